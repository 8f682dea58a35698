// Package app assembles the copilot from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gig-copilot/config"
	"gig-copilot/internal/advisor"
	"gig-copilot/internal/composer"
	"gig-copilot/internal/convctx"
	convMemory "gig-copilot/internal/convctx/memory"
	convRedis "gig-copilot/internal/convctx/redis"
	"gig-copilot/internal/dispatch"
	"gig-copilot/internal/nlu"
	"gig-copilot/internal/nlu/llm"
	"gig-copilot/internal/nlu/rules"
	"gig-copilot/internal/observability"
	"gig-copilot/internal/orchestrator"
	"gig-copilot/internal/repository"
	"gig-copilot/internal/repository/memory"
	"gig-copilot/internal/repository/postgre"
	"gig-copilot/internal/router"
	"gig-copilot/internal/slots"
	"gig-copilot/pkg/gcalendar"
	"gig-copilot/pkg/geocoder"
	"gig-copilot/pkg/llmprovider"
	"gig-copilot/pkg/log"
)

// App is a wired copilot plus the resources it owns.
type App struct {
	Orchestrator *orchestrator.Orchestrator
	// ReadyChecks probe external dependencies, keyed by name.
	ReadyChecks map[string]func(ctx context.Context) error

	closers []func() error
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New wires every component from cfg. reg receives the metrics; z backs the audit log.
func New(ctx context.Context, cfg *config.Config, l log.Logger, z *zap.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{ReadyChecks: make(map[string]func(ctx context.Context) error)}
	conv := cfg.Conversation

	repo, err := a.repository(cfg, l)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	contexts := a.contextStore(cfg, l)

	capability, err := capability(cfg, l)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	classifier, err := router.New(capability, l, router.Options{
		Threshold: conv.ConfidenceThreshold,
		Timeout:   conv.CallTimeout,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("router: %w", err)
	}

	deps := dispatch.Deps{Trips: repo, Checks: repo, Goals: repo}
	if cfg.Geocoder.Enabled {
		geo, err := geocoder.New(geocoder.Config{
			APIURL:        cfg.Geocoder.APIURL,
			UserAgent:     cfg.Geocoder.UserAgent,
			Region:        cfg.Geocoder.Region,
			CountryCodes:  cfg.Geocoder.CountryCodes,
			RatePerSecond: cfg.Geocoder.RatePerSecond,
			CacheSize:     cfg.Geocoder.CacheSize,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("geocoder: %w", err)
		}
		deps.Geocoder = geo
	}
	if cfg.GoogleCalendar.CredentialsPath != "" {
		cal, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if err != nil {
			l.Warnf(ctx, "Google Calendar not available, reminders disabled: %v", err)
		} else {
			deps.Reminders = cal
			l.Info(ctx, "Google Calendar reminders enabled")
		}
	}

	dispatcher, err := dispatch.New(deps, dispatch.Options{
		PendingTTL:     conv.PendingTTL,
		CallTimeout:    conv.CallTimeout,
		RecentEntities: conv.RecentEntities,
		Timezone:       conv.Timezone,
	}, l)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	adv, err := advisor.New(advisor.Readers{Trips: repo, Checks: repo, Goals: repo}, advisor.Options{
		SavingsRate: conv.SavingsRate,
		RangeDays:   conv.AnalysisRangeDays,
		CallTimeout: conv.CallTimeout,
		Timezone:    conv.Timezone,
	}, l)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	comp, err := composer.New(l, conv.Timezone)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	o, err := orchestrator.New(orchestrator.Deps{
		Contexts:   contexts,
		Classifier: classifier,
		Extractor:  slots.New(capability, l, conv.CallTimeout),
		Dispatcher: dispatcher,
		Advisor:    adv,
		Composer:   comp,
		Metrics:    observability.NewMetrics(reg),
		Audit:      observability.NewAudit(z),
	}, orchestrator.Options{
		TurnTimeout:      conv.TurnTimeout,
		CallTimeout:      conv.CallTimeout,
		CancelSuperseded: conv.CancelSuperseded,
	}, l)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Orchestrator = o
	return a, nil
}

func (a *App) repository(cfg *config.Config, l log.Logger) (repository.Repository, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		a.closers = append(a.closers, db.Close)
		a.ReadyChecks["postgres"] = db.PingContext
		return postgre.New(db, l), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (a *App) contextStore(cfg *config.Config, l log.Logger) convctx.Store {
	if cfg.Storage.ContextDriver != "redis" {
		return convMemory.New(cfg.Conversation.MaxUsers, cfg.Conversation.ContextTTL)
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)
	a.ReadyChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return convRedis.New(client, cfg.Conversation.ContextTTL, l)
}

// capability picks the language understanding driver. The llm driver keeps
// the rules engine behind it so a provider outage still gets an answer.
func capability(cfg *config.Config, l log.Logger) (nlu.Capability, error) {
	engine := rules.New()
	if cfg.NLU.Driver != "llm" {
		return engine, nil
	}

	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}
	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotal, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l)

	model, err := llm.New(manager, l)
	if err != nil {
		return nil, err
	}
	return nlu.NewChain(model, engine), nil
}
