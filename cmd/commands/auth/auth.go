package auth

import (
	"zoesolar/zoe/internal/services/auth"

	"github.com/spf13/cobra"
)

// storeFactory returns the credential store. Tests replace it.
var storeFactory = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage credentials for external services",
		Long: `Manage credentials for external services.

Tokens are stored in the OS keychain. The http chat responder sends the
"responder" token as a bearer token.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
