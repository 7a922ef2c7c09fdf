// Package setup builds the shared runtime components of the commands from
// the resolved configuration.
package setup

import (
	"context"
	"io"
	"time"

	"github.com/pgx-contrib/pgxtrace"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/completion"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/db/postgres"
	"github.com/mpapenbr/greenhell-go/pkg/store"
	"github.com/mpapenbr/greenhell-go/pkg/utils"
)

//nolint:gochecknoglobals // set once by Logging
var sqlLogger = log.Default().Named("sql")

var telemetry *config.Telemetry

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// Logging replaces the default logger according to the log flags
func Logging(w io.Writer) *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			w,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			w,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			w,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.DevLogger(
			w,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(logger)
	return logger
}

// Telemetry starts the exporters and runtime metrics if enabled
func Telemetry(ctx context.Context) {
	if !config.EnableTelemetry {
		return
	}
	log.Info("Enabling telemetry")
	var err error
	if telemetry, err = config.SetupTelemetry(ctx); err != nil {
		log.Warn("Could not setup telemetry", log.ErrorField(err))
		return
	}
	err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
	if err != nil {
		log.Warn("Could not start runtime metrics", log.ErrorField(err))
	}
}

// Shutdown flushes telemetry data and the loggers
func Shutdown(ctx context.Context) {
	if err := telemetry.Shutdown(ctx); err != nil {
		log.Warn("Could not shutdown telemetry", log.ErrorField(err))
	}
	//nolint:errcheck // stderr may not support sync
	log.Sync()
}

// ConnOptions configures sql logging and tracing of database connections
func ConnOptions() []postgres.ConnConfigOption {
	pgTracer := pgxtrace.CompositeQueryTracer{
		postgres.NewMyTracer(sqlLogger, log.DebugLevel),
	}
	if config.EnableTelemetry && telemetry != nil {
		pgTracer = append(pgTracer, postgres.NewOtlpTracer())
	}
	return []postgres.ConnConfigOption{postgres.WithTracer(pgTracer)}
}

// Store waits for the database and returns the store for config.DB
func Store(ctx context.Context) (*store.Store, error) {
	if err := utils.WaitForDB(ctx, config.DB, config.WaitForServices); err != nil {
		return nil, err
	}
	return store.New(config.DB, store.WithConnOptions(ConnOptions()...)), nil
}

// Completer returns the completion client including the configured retries
func Completer() completion.Completer {
	client := completion.NewClient(config.APIKey,
		completion.WithEndpoint(config.CompletionURL),
		completion.WithModel(config.CompletionModel))
	if config.CompletionRetries <= 0 {
		return client
	}
	return completion.WithRetry(client, uint64(config.CompletionRetries), 0)
}
