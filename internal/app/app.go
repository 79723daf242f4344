// Package app wires together all dependencies and runs the catalog service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ayurbloom/catalog-service/internal/config"
	"github.com/ayurbloom/catalog-service/internal/event"
	handler "github.com/ayurbloom/catalog-service/internal/handler/http"
	"github.com/ayurbloom/catalog-service/internal/service"
	"github.com/ayurbloom/catalog-service/internal/store"
	"github.com/ayurbloom/catalog-service/internal/store/mongodb"
	"github.com/ayurbloom/catalog-service/pkg/health"
	pkgkafka "github.com/ayurbloom/catalog-service/pkg/kafka"
	"github.com/ayurbloom/catalog-service/pkg/middleware"
	"github.com/ayurbloom/catalog-service/pkg/tracing"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	mongo          *mongodb.Store
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// A failed store connection is not fatal: the service starts in degraded
// mode and serves the mock catalog on the read path.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog-service",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Connect the document store. On failure the process keeps running with
	// every store call reporting unavailable; there is no reconnect.
	var (
		st    store.Store
		mongo *mongodb.Store
	)
	mongo, err = mongodb.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Warn("store connection failed, starting in degraded mode",
			slog.String("database", cfg.DatabaseName),
			slog.String("error", err.Error()),
		)
		mongo = nil
		st = store.Unavailable{}
	} else {
		logger.Info("connected to document store",
			slog.String("database", cfg.DatabaseName),
		)
		st = mongo
	}

	// Kafka producer and event publisher, only when enabled.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher
	)
	if cfg.EventsEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	catalogService := service.NewCatalogService(st, publisher, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("store", st.Ping)

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(catalogService, healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		mongo:          mongo,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components: drain in-flight HTTP requests,
// flush pending spans, close the Kafka producer, then the store connection.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.mongo != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := a.mongo.Close(closeCtx); err != nil {
			a.logger.Error("store close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
