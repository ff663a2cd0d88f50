package cache

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/logging"
	"zoesolar/zoe/internal/services/aicache"

	"github.com/spf13/cobra"
)

func DemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through cache expiry, eviction, and key hashing",
		Long: `Walk through cache expiry, eviction, and key hashing.

The demo builds a small cache (TTL 100ms, max size 2, sweep every 50ms),
inserts three entries, and prints the cache state as the sweep and expiry
run. It then stores a chat reply and shows that lookups are case-sensitive.

Example:
  zoe cache demo`,
		Args:         cobra.NoArgs,
		RunE:         runDemo,
		SilenceUsage: true,
	}

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := logging.FromContext(ctx)

	c := cache.New[int](cache.Options{
		DefaultTTL:      100 * time.Millisecond,
		MaxSize:         2,
		CleanupInterval: 50 * time.Millisecond,
		Logger:          logger,
	})
	defer c.Close()

	fmt.Fprintln(out, "Capacity and expiry (ttl=100ms max-size=2 cleanup=50ms)")
	for i, key := range []string{"a", "b", "c"} {
		c.Set(key, i+1)
	}
	printState(out, "after set a, b, c", c)

	if err := sleep(ctx, 60*time.Millisecond); err != nil {
		return err
	}
	printState(out, "after 60ms", c)

	if err := sleep(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	printState(out, "after 160ms", c)

	s := c.Stats()
	fmt.Fprintf(out, "  evicted=%d swept=%d expired=%d\n\n", s.Evicted, s.Swept, s.Expired)

	svc := aicache.New(cache.Options{Logger: logger})
	defer svc.Close()

	fmt.Fprintln(out, "Message replies")
	svc.CacheMessageResponse("Hallo", "Hi!")
	for _, msg := range []string{"Hallo", "hallo"} {
		reply, ok := svc.CachedMessageResponse(msg)
		if !ok {
			reply = "(miss)"
		} else {
			reply = fmt.Sprintf("%q", reply)
		}
		fmt.Fprintf(out, "  %-7s key=%-18s %s\n", msg, aicache.MessageKey(msg), reply)
	}
	return nil
}

func printState(w io.Writer, label string, c *cache.Cache[int]) {
	keys := c.Keys()
	if len(keys) == 0 {
		fmt.Fprintf(w, "  %-18s size=%d\n", label, c.Size())
		return
	}
	fmt.Fprintf(w, "  %-18s size=%d keys=[%s]\n", label, c.Size(), strings.Join(keys, " "))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
