package config

import (
	"zoesolar/zoe/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zoe configuration",
		Long: "View and modify persistent zoe settings.\n\n" +
			"Configuration is stored at ~/.config/zoe/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())
	cmd.AddCommand(UnsetCommand())

	return cmd
}
