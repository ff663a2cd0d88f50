package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"zoesolar/zoe/cmd/commands/analytics"
	"zoesolar/zoe/cmd/commands/auth"
	"zoesolar/zoe/cmd/commands/cache"
	"zoesolar/zoe/cmd/commands/chat"
	cfgcmd "zoesolar/zoe/cmd/commands/config"
	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/logging"
	"zoesolar/zoe/internal/responder"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "zoe",
		Short: "A solar assistant CLI with an in-memory AI response cache",
		Long: `zoe answers solar questions and caches AI responses in memory so
repeated questions, roof analyses, and product comparisons are served
without another round trip.

Quick start:
  zoe chat                         # Ask questions, repeats come from the cache
  zoe cache demo                   # Watch entries expire and get evicted
  zoe cache watch                  # Live cache statistics under load
  zoe analytics summary            # Cache hit rate per kind`,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.FromContext(cmd.Context()).Sync()
		},
	}

	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, or error (overrides config)")

	cmd.AddCommand(analytics.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cache.NewCommand())
	cmd.AddCommand(chat.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// setupLogging builds the logger from --log-level, falling back to the
// configured level, and stores it on the command context.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := resolveLevel(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(level)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}

func resolveLevel(cmd *cobra.Command) (zapcore.Level, error) {
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level, err := config.ParseLevel(flag)
		if err != nil {
			return zapcore.InfoLevel, fmt.Errorf("invalid --log-level: %w", err)
		}
		return level, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return cfg.Level()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	responder.RegisterBuiltins()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = rootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
