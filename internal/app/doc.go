// Package app wires configuration, telemetry, the funding dataset and the
// HTTP stack into one Application and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Validate the dataset file named by the configuration
//	2. Initialize OpenTelemetry (tracing, Prometheus metrics)
//	3. Load, clean and index the funding dataset
//	4. Build the health checks and HTTP handlers
//	5. Assemble the chi router and the http.Server
//
// A dataset that is missing a required column, or that has no rows left after
// cleaning, aborts startup with an *errors.AppError whose Fatal method
// reports true.
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	application, err := app.NewApplication(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns once ctx is cancelled and the server has drained in-flight
// requests within Server.ShutdownTimeout. The SQL store and the telemetry
// providers are closed afterwards. The package never calls os.Exit.
package app
