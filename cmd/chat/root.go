package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"gig-copilot/config"
	"gig-copilot/internal/app"
	"gig-copilot/internal/model"
	"gig-copilot/pkg/log"
)

const prompt = "you> "

type cli struct {
	userID   string
	logLevel string
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "gig-chat",
		Short: "Talk to the copilot from a terminal",
		Long: `gig-chat runs the copilot in-process and reads one utterance per line.
It uses the same configuration as the API server, so trips, checks and goals
land in the configured repository.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.userID, "user", "u", "cli_driver", "User ID the turns are attributed to")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "error", "Log level for the embedded copilot")

	rootCmd.AddCommand(newCalendarAuthCommand())
	return rootCmd
}

func (c *cli) run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zapCfg := log.ZapConfig{
		Level:    c.logLevel,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	}
	logger := log.Init(zapCfg)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	copilot, err := app.New(ctx, cfg, logger, log.NewZap(zapCfg), prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("init copilot: %w", err)
	}
	defer copilot.Close()

	fmt.Fprintf(out, "Chatting as %s. Ctrl-D to quit.\n", c.userID)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		reply, err := copilot.Orchestrator.HandleTurn(ctx, model.Utterance{
			UserID:     c.userID,
			Text:       text,
			ReceivedAt: time.Now(),
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "copilot> %s\n", reply.Text)
	}
}
