package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	tgDelivery "gig-copilot/internal/chat/delivery/telegram"
	"gig-copilot/internal/middleware"
	"gig-copilot/internal/orchestrator"
	"gig-copilot/pkg/log"
)

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Chat domain
	turns           orchestrator.TurnHandler
	middleware      middleware.Middleware
	telegramHandler tgDelivery.Handler

	// Operations
	gatherer    prometheus.Gatherer
	readyChecks map[string]ReadyCheck
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Chat domain
	Turns           orchestrator.TurnHandler
	Middleware      middleware.Middleware
	TelegramHandler tgDelivery.Handler

	// Operations. A nil Gatherer serves the default registry.
	Gatherer    prometheus.Gatherer
	ReadyChecks map[string]ReadyCheck
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		turns:           cfg.Turns,
		middleware:      cfg.Middleware,
		telegramHandler: cfg.TelegramHandler,
		gatherer:        cfg.Gatherer,
		readyChecks:     cfg.ReadyChecks,
	}
	if srv.gatherer == nil {
		srv.gatherer = prometheus.DefaultGatherer
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.turns == nil {
		return errors.New("turn handler is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
