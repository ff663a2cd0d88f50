package analytics

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"zoesolar/zoe/internal/analytics"

	"github.com/spf13/cobra"
)

func SummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize cache effectiveness per kind",
		Long: `Summarize interactions per kind: count, cache hit rate, errors, and
average duration.

Examples:
  zoe analytics summary
  zoe analytics summary --since 24h
  zoe analytics summary -o json`,
		Args:         cobra.NoArgs,
		RunE:         runSummary,
		SilenceUsage: true,
	}

	cmd.Flags().String("since", "7d", "Only include interactions newer than this (e.g. 24h, 30d)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	sinceRaw, _ := cmd.Flags().GetString("since")
	window, err := parseDuration(sinceRaw)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := analytics.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	summaries, err := repo.Summary(time.Now().Add(-window))
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No interactions in the last %s.\n", sinceRaw)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tCOUNT\tHITS\tHIT RATE\tERRORS\tAVG DURATION")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%d\t%s\n",
			s.Kind,
			s.Count,
			s.CacheHits,
			s.HitRate()*100,
			s.Errors,
			formatDuration(int64(s.AvgDurationMs)),
		)
	}
	return w.Flush()
}
