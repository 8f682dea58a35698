package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"gig-copilot/config"
	_ "gig-copilot/docs" // Swagger docs
	"gig-copilot/internal/app"
	tgDelivery "gig-copilot/internal/chat/delivery/telegram"
	"gig-copilot/internal/httpserver"
	"gig-copilot/internal/middleware"
	"gig-copilot/pkg/log"
	"gig-copilot/pkg/telegram"
)

// @title       Gig Copilot API
// @description Conversational assistant for gig drivers: trip logging, vehicle checks, savings goals and earnings advice.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	zapCfg := log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	}
	logger := log.Init(zapCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Gig Copilot...")
	logger.Infof(ctx, "Environment: %s, storage: %s, contexts: %s, nlu: %s",
		cfg.Environment.Name, cfg.Storage.Driver, cfg.Storage.ContextDriver, cfg.NLU.Driver)

	// 3. Copilot
	copilot, err := app.New(ctx, cfg, logger, log.NewZap(zapCfg), prometheus.DefaultRegisterer)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize copilot: %v", err)
		os.Exit(1)
	}
	defer copilot.Close()

	// 4. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, copilot.Orchestrator, bot, cfg.Conversation.TurnTimeout+cfg.Conversation.CallTimeout)

		if cfg.Telegram.WebhookURL != "" {
			if whErr := bot.SetWebhook(ctx, cfg.Telegram.WebhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 5. HTTP Server
	readyChecks := make(map[string]httpserver.ReadyCheck, len(copilot.ReadyChecks))
	for name, check := range copilot.ReadyChecks {
		readyChecks[name] = check
	}
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Turns:       copilot.Orchestrator,
		Middleware: middleware.New(logger, middleware.Config{
			PerMinute: cfg.RateLimit.PerMinute,
			Burst:     cfg.RateLimit.Burst,
			MaxUsers:  cfg.RateLimit.MaxUsers,
		}),
		TelegramHandler: telegramHandler,
		Gatherer:        prometheus.DefaultGatherer,
		ReadyChecks:     readyChecks,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
