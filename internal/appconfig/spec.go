package appconfig

import (
	"time"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address for serving API requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9230"`

	// DevMode to indicate development mode. When true, the program spins up
	// utilities for debugging (pprof, verbose query logging) and relaxes the
	// graceful shutdown behavior.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs)
	// to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for details on the format.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// RedisURL is the URL of the Redis server, used for sessions, shared
	// caches and the weekly-clear locks. See
	// https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL for the format.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/2"`

	// SentryDSN enables Sentry error reporting when non-empty.
	SentryDSN string `split_words:"true"`

	// AdminKey guards the /api/_/admin endpoint group. Leaving this empty
	// disables the admin surface entirely.
	AdminKey string `split_words:"true"`

	// SessionTTL is how long an issued session token stays valid in Redis.
	SessionTTL time.Duration `split_words:"true" default:"720h"`

	// XPTablePath points to the per-level experience requirement CSV
	// (columns: level, actual, billions, trillions; levels 200-299).
	// When the file is missing the XP overview degrades gracefully.
	XPTablePath string `split_words:"true" default:"data/xp_table.csv"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut
	// down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// WorkerEnabled is a flag to indicate whether to run the periodic
	// drop-rate recompute worker in this process.
	WorkerEnabled bool `split_words:"true"`

	// WorkerInterval describes the interval in-between recompute batches.
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"30m"`

	// WorkerTimeout describes the timeout for a single recompute batch.
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"10m"`
}
