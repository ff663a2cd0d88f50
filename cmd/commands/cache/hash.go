package cache

import (
	"fmt"
	"strings"

	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/services/aicache"

	"github.com/spf13/cobra"
)

func HashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <text>",
		Short: "Print the cache key derived from text",
		Long: `Print the cache key derived from text.

The text is hashed exactly as given (case and whitespace matter). Multiple
arguments are joined with single spaces. With --purpose comparison each
argument is a product ID, and their order matters.

Examples:
  zoe cache hash Hallo
  zoe cache hash --purpose message "Was kostet eine Anlage?"
  zoe cache hash --purpose comparison panel-400 panel-430`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runHash,
		SilenceUsage: true,
	}

	cmd.Flags().String("purpose", "", "Print the full key for a purpose: message, roof, or comparison")

	return cmd
}

func runHash(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	purpose, _ := cmd.Flags().GetString("purpose")

	var key string
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case "":
		key = cache.HashKey(text)
	case "message":
		key = aicache.MessageKey(text)
	case "roof":
		key = aicache.RoofKey(text)
	case "comparison":
		key = aicache.ComparisonKey(args)
	default:
		return fmt.Errorf("unknown purpose %q (valid: message, roof, comparison)", purpose)
	}

	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}
