package auth

import (
	"fmt"
	"os"

	"zoesolar/zoe/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which services have stored tokens",
		Long: `Show which services have stored tokens.

Example:
  zoe auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := storeFactory()

			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			for _, s := range tui.CollectServiceStatus(store) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.Name, s.Detail)
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
