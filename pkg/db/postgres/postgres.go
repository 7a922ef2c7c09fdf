package postgres

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/greenhell-go/log"
)

type ConnConfigOption func(cfg *pgx.ConnConfig)

func WithTracer(tracer pgx.QueryTracer) ConnConfigOption {
	return func(cfg *pgx.ConnConfig) {
		cfg.Tracer = tracer
	}
}

// Connect opens a single connection to url and verifies it with a ping.
// Callers are responsible for closing the connection.
func Connect(ctx context.Context, url string, opts ...ConnConfigOption) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	for _, opt := range opts {
		opt(connConfig)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to get a valid database connection: %w", err)
	}
	return conn, nil
}

func NewOtlpTracer() pgx.QueryTracer {
	return otelpgx.NewTracer()
}

func NewMyTracer(logger *log.Logger, level log.Level) pgx.QueryTracer {
	return &myQueryTracer{log: logger, level: level}
}

type myQueryTracer struct {
	log   *log.Logger
	level log.Level
}

func (tracer *myQueryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	tracer.log.Log(tracer.level, "Executing",
		log.String("sql", data.SQL),
		log.Any("args", data.Args))

	return ctx
}

//nolint:whitespace // can't make the linters happy
func (tracer *myQueryTracer) TraceQueryEnd(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	if data.Err != nil {
		tracer.log.Log(tracer.level, "Query failed", log.ErrorField(data.Err))
	}
}
