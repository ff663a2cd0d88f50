package analytics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"zoesolar/zoe/internal/analytics"
	"zoesolar/zoe/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete interactions older than a duration",
		Long: `Delete interactions older than a duration.

In a terminal you are asked to confirm unless --yes is given.

Examples:
  zoe analytics prune --older-than 30d
  zoe analytics prune --older-than 72h --yes`,
		Args:         cobra.NoArgs,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("older-than", "", "Remove interactions older than this duration (e.g. 30d, 72h)")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) error {
	olderThanRaw, _ := cmd.Flags().GetString("older-than")
	if strings.TrimSpace(olderThanRaw) == "" {
		return fmt.Errorf("--older-than is required")
	}

	olderThan, err := parseDuration(olderThanRaw)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		ok, err := tui.ConfirmPrune(false, olderThan)
		if errors.Is(err, tui.ErrAborted) || (err == nil && !ok) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing removed.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	repo, err := analytics.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	removed, err := repo.Prune(olderThan)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d interaction(s).\n", removed)
	return nil
}
