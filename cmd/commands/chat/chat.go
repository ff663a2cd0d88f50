package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"zoesolar/zoe/internal/analytics"
	"zoesolar/zoe/internal/chat"
	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/logging"
	"zoesolar/zoe/internal/responder"
	"zoesolar/zoe/internal/services/aicache"
	"zoesolar/zoe/internal/services/auth"
	"zoesolar/zoe/internal/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// storeFactory returns the credential store. Tests replace it.
var storeFactory = auth.DefaultStore

// NewCommand returns the "chat" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask the solar assistant questions",
		Long: `Ask the solar assistant questions.

Each line read is answered by the selected responder. Repeated questions
within 30 minutes are answered from the cache and marked "(cached)".
Every answer is recorded for 'zoe analytics'.

In a terminal an input prompt is shown; an empty answer ends the chat.
Otherwise questions are read line by line from stdin until EOF.

Responders:
  faq    built-in answers to frequent questions (default)
  http   remote assistant at responder-url (see 'zoe config set')

Examples:
  zoe chat
  zoe chat --responder http
  echo "Was kostet eine Anlage?" | zoe chat`,
		Args:         cobra.NoArgs,
		RunE:         runChat,
		SilenceUsage: true,
	}

	cmd.Flags().String("responder", "faq", "Responder to use: faq or http")
	cmd.Flags().Bool("no-record", false, "Do not record interactions for analytics")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	responder.RegisterBuiltins()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger

	name, _ := cmd.Flags().GetString("responder")
	r, err := responder.Get(name, responder.Settings{
		URL:    cfg.ResponderURL,
		Store:  storeFactory(),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	aiCache := aicache.New(opts)
	defer aiCache.Close()

	chatOpts := []chat.Option{chat.WithLogger(logger)}
	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		repo, err := analytics.Open()
		if err != nil {
			// Chat still works without analytics.
			logger.Warn("analytics unavailable", zap.Error(err))
		} else {
			defer repo.Close()
			chatOpts = append(chatOpts, chat.WithRecorder(repo))
		}
	}
	svc := chat.NewService(aiCache, r, chatOpts...)

	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return interactiveLoop(ctx, cmd, svc)
	}
	return scanLoop(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc)
}

func interactiveLoop(ctx context.Context, cmd *cobra.Command, svc *chat.Service) error {
	for {
		message, err := tui.PromptMessage(false)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if message == "" {
			return nil
		}

		var reply chat.Reply
		spinErr := spinner.New().
			Title("Antwort wird erstellt...").
			Output(cmd.ErrOrStderr()).
			ActionWithErr(func(context.Context) error {
				var err error
				reply, err = svc.Answer(ctx, message)
				return err
			}).
			Run()
		if spinErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", spinErr)
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), "> "+message)
		printReply(cmd.OutOrStdout(), reply)
	}
}

// scanLoop answers each non-empty line of in. Answer errors are reported and
// the loop continues.
func scanLoop(ctx context.Context, in io.Reader, out io.Writer, svc *chat.Service) error {
	scanner := bufio.NewScanner(in)
	failed := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, err := svc.Answer(ctx, line)
		if err != nil {
			failed++
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		printReply(out, reply)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d message(s) could not be answered", failed)
	}
	return nil
}

func printReply(w io.Writer, reply chat.Reply) {
	if reply.Cached {
		fmt.Fprintf(w, "%s (cached)\n", reply.Text)
		return
	}
	fmt.Fprintln(w, reply.Text)
}
