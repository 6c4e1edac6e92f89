package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"fundingpulse/internal/config"
	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/infrastructure"
	mw "fundingpulse/internal/middleware"
	"fundingpulse/internal/services"
	handlers "fundingpulse/internal/transport/http"
	"fundingpulse/internal/validation"
	"fundingpulse/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Funding       *services.FundingService
	Health        *services.HealthService
	Metrics       *infrastructure.PipelineMetrics
}

// NewApplication loads the dataset named by cfg and wires the HTTP stack
// around it. A missing column or an empty cleaned dataset aborts startup.
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	if err := validation.NewFileValidator(logger).ValidateDatasetFile(cfg.Dataset.Path); err != nil {
		return nil, apierrors.NewAppError(apierrors.ErrTypeValidation, "invalid dataset file", err).
			WithContext("path", cfg.Dataset.Path)
	}

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.NewOTelConfig(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(ctx); err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelProviders.Shutdown(shutdownCtx)
		return nil, err
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the funding data and builds the health checks
func (a *Application) initializeServices(ctx context.Context) error {
	metrics, err := infrastructure.NewPipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	a.Metrics = metrics

	funding, err := services.LoadFundingService(ctx, services.LoadOptions{
		Dataset: a.Config.Dataset,
		Metrics: metrics,
		Tracer:  a.OTelProviders.Tracer,
		Logger:  a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to load funding dataset: %w", err)
	}
	a.Funding = funding

	runtimeMetrics, err := infrastructure.NewRuntimeMetrics(a.OTelProviders.Meter, time.Now())
	if err != nil {
		a.Logger.WarnContext(ctx, "runtime metrics unavailable", slog.String("error", err.Error()))
	}

	a.Health = services.NewHealthService(contracts.Version,
		map[string]services.ReadinessChecker{"funding": funding},
		runtimeMetrics, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	// RequestID → RealIP → OTel → Logger → Recoverer → Timeout
	r.Use(mw.RequestID)
	r.Use(mw.RealIP)
	r.Use(mw.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(mw.StructuredLogger(a.Logger))
	r.Use(mw.Recoverer(a.Logger))
	r.Use(mw.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(mw.CORS(a.corsConfig()))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(mw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}
	r.Use(mw.Timeout(a.Config.Server.RequestTimeout, a.Logger))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
	fundingHandler := handlers.NewFundingHandler(a.Funding, mw.NewQueryValidator(a.Logger), a.Logger, errorHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.Compress(config.CompressionLevel))
		r.Mount(config.HealthEndpoint, healthHandler.Routes())
		r.Get(config.APIBasePath+"/version", healthHandler.Version)
		r.Mount(config.FundingBasePath, fundingHandler.Routes())
	})

	r.Handle(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))

	a.Router = r
}

func (a *Application) corsConfig() mw.CORSConfig {
	return mw.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{mw.RequestIDHeader},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run listens on the configured port and serves until ctx is cancelled
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully and releases the dataset and telemetry.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Server listening",
			slog.String("address", ln.Addr().String()),
			slog.Int("records", a.Funding.Dataset().Len()))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if err := a.Funding.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close funding store: %w", err))
	}
	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
