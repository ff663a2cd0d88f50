package analytics

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"zoesolar/zoe/internal/analytics"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent interactions",
		Long: `List recent interactions, newest first.

Examples:
  zoe analytics list
  zoe analytics list --limit 50
  zoe analytics list --kind chat
  zoe analytics list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of interactions to display")
	cmd.Flags().String("kind", "", "Filter by kind (e.g. chat)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	kind, _ := cmd.Flags().GetString("kind")
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := analytics.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []analytics.Interaction
	if kind != "" {
		entries, err = repo.ListByKind(kind, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No interactions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tCACHE\tOUTCOME\tDURATION\tDETAIL")
	for _, e := range entries {
		cacheCol := "miss"
		if e.CacheHit {
			cacheCol = "hit"
		}
		detail := e.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Kind,
			cacheCol,
			e.Outcome,
			formatDuration(e.DurationMs),
			detail,
		)
	}
	return w.Flush()
}
