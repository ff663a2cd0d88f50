package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/loadgen"
	"zoesolar/zoe/internal/logging"
	"zoesolar/zoe/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// defaultPlainDuration bounds non-interactive runs started without --duration.
const defaultPlainDuration = 10 * time.Second

func WatchCommand() *cobra.Command {
	defaults := loadgen.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a synthetic workload and watch cache statistics",
		Long: `Run a synthetic read/write workload against a cache built from your
configuration and watch size, hit rate, expiry, and eviction live.

In a terminal this opens a full-window view. Otherwise one line of
statistics is printed per interval.

Examples:
  zoe cache watch
  zoe cache watch --duration 30s --workers 8 --keys 2000
  zoe cache watch --duration 5s --interval 500ms | tee stats.log`,
		Args:         cobra.NoArgs,
		RunE:         runWatch,
		SilenceUsage: true,
	}

	cmd.Flags().Duration("duration", 0, "Stop after this long (default: until quit; 10s when not a terminal)")
	cmd.Flags().Duration("interval", time.Second, "Sampling interval")
	cmd.Flags().Int("workers", defaults.Workers, "Concurrent workload goroutines")
	cmd.Flags().Int("keys", defaults.Keys, "Distinct keys in the workload")
	cmd.Flags().Float64("set-ratio", defaults.SetRatio, "Share of operations that are writes (0-1)")
	cmd.Flags().Duration("ttl", defaults.TTL, "Mean TTL of written entries")
	cmd.Flags().Bool("plain", false, "Print text lines even in a terminal")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	interval, _ := cmd.Flags().GetDuration("interval")
	plain, _ := cmd.Flags().GetBool("plain")

	if interval <= 0 {
		return errors.New("--interval must be positive")
	}
	if duration < 0 {
		return errors.New("--duration must not be negative")
	}

	lcfg := loadgen.DefaultConfig()
	lcfg.Workers, _ = cmd.Flags().GetInt("workers")
	lcfg.Keys, _ = cmd.Flags().GetInt("keys")
	lcfg.SetRatio, _ = cmd.Flags().GetFloat64("set-ratio")
	lcfg.TTL, _ = cmd.Flags().GetDuration("ttl")
	if lcfg.SetRatio < 0 || lcfg.SetRatio > 1 {
		return fmt.Errorf("--set-ratio must be between 0 and 1, got %v", lcfg.SetRatio)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return err
	}
	logger := logging.FromContext(cmd.Context())
	opts.Logger = logger

	c := cache.New[string](opts)
	defer c.Close()

	interactive := !plain && term.IsTerminal(int(os.Stdout.Fd()))
	if !interactive && duration == 0 {
		duration = defaultPlainDuration
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var counters loadgen.Counters
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loadgen.Run(gctx, c, lcfg, &counters)
	})
	g.Go(func() error {
		defer cancel()
		if interactive {
			return tui.RunCacheWatch(gctx, c, tui.WatchOptions{
				Interval: interval,
				Duration: duration,
				Ops:      func() uint64 { return counters.Sets.Load() + counters.Gets.Load() },
			})
		}
		return printWatch(gctx, cmd, c, interval, duration)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("watch finished",
		zap.Uint64("sets", counters.Sets.Load()),
		zap.Uint64("gets", counters.Gets.Load()),
		zap.Uint64("hits", counters.Hits.Load()),
	)
	return nil
}

func printWatch(ctx context.Context, cmd *cobra.Command, c *cache.Cache[string], interval, duration time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			elapsed := time.Since(start)
			fmt.Fprintln(cmd.OutOrStdout(), tui.WatchLine(elapsed, c.Stats()))
			if elapsed >= duration {
				return nil
			}
		}
	}
}
