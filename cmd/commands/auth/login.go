package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"zoesolar/zoe/internal/services/auth"
	"zoesolar/zoe/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <service>",
		Short: "Store a token for a service",
		Long: `Store a token for a service in the local keychain.

Known services: ` + strings.Join(auth.KnownServices, ", ") + `

Examples:
  zoe auth login responder
  zoe auth login responder --token "$ZOE_RESPONDER_TOKEN"`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "Token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	service := auth.NormalizeService(args[0])
	if err := auth.ValidateService(service); err != nil {
		return fmt.Errorf("%w %q (known: %s)", err, args[0], strings.Join(auth.KnownServices, ", "))
	}

	store := storeFactory()

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)

	if token == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no token given: pass --token or run in a terminal")
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			saved, err := tui.RunAuthLogin(service, store)
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", service)
			}
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), "Enter token: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(bytes))
	}

	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := store.SetToken(service, token); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", service)
	return nil
}

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <service>",
		Short: "Remove the stored token for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := auth.NormalizeService(args[0])
			err := storeFactory().DeleteToken(service)
			if errors.Is(err, auth.ErrTokenNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", service)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", service)
			return nil
		},
		SilenceUsage: true,
	}
}
