package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewCommand returns the "analytics" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Inspect recorded AI interactions",
		Long: "Inspect how AI requests were served (cache hit or miss, duration,\n" +
			"outcome) and prune old records.\n\n" +
			"Interactions are stored locally in ~/.config/zoe/zoe.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(SummaryCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}

// parseDuration accepts Go durations plus a whole-day "d" suffix (e.g. 30d).
func parseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if before, ok := strings.CutSuffix(input, "d"); ok {
		days, err := strconv.Atoi(before)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		if days <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
