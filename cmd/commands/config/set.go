package config

import (
	"fmt"
	"strings"

	"zoesolar/zoe/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  zoe config set default-ttl 10m\n" +
			"  zoe config set max-size 5000\n" +
			"  zoe config set responder-url https://assistant.example.com/reply",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := strings.TrimSpace(args[1])
	if value == "" {
		return fmt.Errorf("value for %s cannot be empty (use 'zoe config unset %s')", spec.Name, spec.Name)
	}
	if err := spec.Validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", spec.Name, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}

// UnsetCommand returns the "config unset" command.
func UnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Reset a configuration value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := config.Lookup(args[0])
			if spec == nil {
				return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			spec.Set(cfg, "")
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", spec.Name)
			return nil
		},
		SilenceUsage: true,
	}
}
