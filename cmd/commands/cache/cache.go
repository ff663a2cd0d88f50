package cache

import "github.com/spf13/cobra"

// NewCommand returns the "cache" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and exercise the AI response cache",
		Long: "Inspect and exercise zoe's in-memory TTL cache.\n\n" +
			"The cache is configured through 'zoe config set' (default-ttl, max-size,\n" +
			"cleanup-interval).",
		SilenceUsage: true,
	}

	cmd.AddCommand(DemoCommand())
	cmd.AddCommand(HashCommand())
	cmd.AddCommand(WatchCommand())

	return cmd
}
