package config

import (
	"errors"
	"time"
)

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                string        // connection string for the database
	APIKey            string        // api key for the text completion service
	BaseURL           string        // root of the scraped site
	TrackPath         string        // path of the leaderboard page relative to BaseURL
	FetchTimeout      time.Duration // timeout for a single page fetch
	CompletionURL     string        // endpoint of the chat completion API
	CompletionModel   string        // model identifier sent with completion requests
	CompletionRetries int           // additional attempts for failed completion calls (0: single attempt)
	WaitForServices   string        // duration to wait for other services to be ready
	LogLevel          string        // sets the log level (zap log level values)
	SQLLogLevel       string        // sets the log level for sql subsystem
	LogFormat         string        // text vs json
	EnableTelemetry   bool          // enable telemetry
	TelemetryEndpoint string        // endpoint for telemetry
)

var (
	ErrMissingDB     = errors.New("database connection string missing (--db / GH_DB)")
	ErrMissingAPIKey = errors.New("completion api key missing (--api-key / GH_API_KEY)")
)

// RequireDB is used by commands which need database access.
func RequireDB() error {
	if DB == "" {
		return ErrMissingDB
	}
	return nil
}

// RequireAPIKey is used by commands which call the completion service.
func RequireAPIKey() error {
	if APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
