package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/ops-console-service/internal/admin"
	appcarousel "github.com/preston-bernstein/ops-console-service/internal/app/carousel"
	appkyc "github.com/preston-bernstein/ops-console-service/internal/app/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/config"
	httpserver "github.com/preston-bernstein/ops-console-service/internal/http"
	"github.com/preston-bernstein/ops-console-service/internal/http/handlers"
	"github.com/preston-bernstein/ops-console-service/internal/http/middleware"
	"github.com/preston-bernstein/ops-console-service/internal/kyc"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
	"github.com/preston-bernstein/ops-console-service/internal/providers"
	"github.com/preston-bernstein/ops-console-service/internal/refresher"
	"github.com/preston-bernstein/ops-console-service/internal/seed"
	"github.com/preston-bernstein/ops-console-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	kycStore      *kyc.Store
	sessions      *store.SessionStore
	seeds         *seed.Library
	registry      *admin.Registry
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	watcher       seedWatcher
	metricsStop   func(context.Context) error
	closeProvider func()
}

// New constructs a server with the configured provider, seed and refresher.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.KYCProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.KYCProvider, recorder *metrics.Recorder) (*Server, error) {
	seeds, watcher, err := buildSeed(cfg, logger)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	var closeProvider func()
	if provider == nil {
		provider, closeProvider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	kycStore := kyc.NewStore()
	loader := kyc.NewLoader(provider, kycStore, cfg.KYC.BlockingRuleID, logger).WithMetrics(recorder)
	ref := refresher.New(loader, logger, recorder, cfg.KYC.RefreshInterval)
	sessions := store.NewSessionStore()
	registry := admin.NewRegistry(cfg.Admin.Brands, logger)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		kycStore:      kycStore,
		sessions:      sessions,
		seeds:         seeds,
		registry:      registry,
		metricsServer: metricsSrv,
		refresher:     ref,
		watcher:       watcher,
		metricsStop:   metricsShutdown,
		closeProvider: closeProvider,
	}
	s.httpServer = s.buildHTTPServer()
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		refresher:  ref,
	}
}

func (s *Server) buildHTTPServer() httpServer {
	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	carouselSvc := appcarousel.NewService(s.sessions, s.seeds, s.logger, s.metrics)
	kycSvc := appkyc.NewService(s.kycStore, s.refresher, s.logger)

	router := httpserver.NewRouter(
		handlers.NewHandler(s.logger, s.refresher.Status),
		handlers.NewCarouselHandler(carouselSvc, s.logger),
		handlers.NewKYCHandler(kycSvc, s.logger),
		handlers.NewAdminHandler(s.registry, s.cfg.Admin.Token, s.logger),
	)
	wrapped := middleware.LoggingMiddleware(logger, s.metrics, middleware.Recover(router))

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the refresher, seed watcher and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.startWatcher(ctx)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) startWatcher(ctx context.Context) {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Start(ctx); err != nil {
		logging.Warn(s.logger, "seed watcher failed to start", "error", err)
	}
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			logging.Warn(s.logger, "seed watcher stop failed", "error", err)
		}
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.closeProvider != nil {
		s.closeProvider()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()
	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
