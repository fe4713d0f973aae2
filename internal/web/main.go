// Package web assembles the fiber application: access logging, metrics,
// bearer token middleware and the auth handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/authrelay/authrelay/internal/auth"
	"github.com/authrelay/authrelay/internal/config"
	accesslog "github.com/authrelay/authrelay/internal/logger/adapter/fiber"
	"github.com/authrelay/authrelay/internal/token"
	"github.com/authrelay/authrelay/internal/web/handler"
	"github.com/authrelay/authrelay/internal/web/handler/health"
	"github.com/authrelay/authrelay/internal/web/handler/login"
	"github.com/authrelay/authrelay/internal/web/handler/logout"
	"github.com/authrelay/authrelay/internal/web/handler/session"
	authmw "github.com/authrelay/authrelay/internal/web/middleware/auth"
)

// defaultShutDownTime in seconds if the config does not set one.
const defaultShutDownTime = 5

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: report unhealthy first, so
	// a load balancer removes this instance before connections die.
	if !s.fastShutDown {
		wait := s.cfg.Webserver.ShutDownTime
		if wait <= 0 {
			wait = defaultShutDownTime
		}

		log.Info().Msgf("graceful shutdown: return 503 on health for %d seconds", wait)

		s.alive.Store(false)
		time.Sleep(time.Duration(wait) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, authService *auth.Service, codec *token.Codec) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if authService == nil {
		panic("auth service cannot be nil")
	}

	if codec == nil {
		panic("token codec cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: health.Path,
	}))

	// request counting and the metrics endpoint, public by path prefix
	app.Use(newMetricsMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// bearer token middleware
	app.Use(authmw.New(codec))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{&login.Handler, &logout.Handler, &session.Handler} {
		if err := h.Init(app, cfg, authService); err != nil {
			log.Fatal().Err(err).Msg("handler init failed")
		}
	}

	if err := health.Handler.Init(app, cfg, authService, service.alive.Load); err != nil {
		log.Fatal().Err(err).Msg("handler init failed")
	}

	return service
}
