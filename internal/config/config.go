// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced by must(); the rest
// fall back to defaults suitable for local development.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	LogLevel string // logrus level name

	UpstreamURL     string        // base URL of the cinema REST API
	UpstreamTimeout time.Duration // per-request timeout, 0 disables it

	JWTSecret     string        // secret used to sign session cookies
	SessionTTL    time.Duration // lifetime of a session cookie and its stored principal
	SessionCookie string        // cookie name carrying the session token
	CookieSecure  bool          // mark the session cookie Secure
	SessionPrefix string        // Redis key prefix for persisted sessions

	SeatRows                  int  // rows in the room layout, labelled A, B, ...
	SeatsPerRow               int  // seats per row
	OccupancyExcludeCancelled bool // drop cancelled bookings from occupancy

	BcryptCost int // cost for hashing passwords on user writes, 0 stores them as given

	ViewerIdleTTL       time.Duration // idle time before a room viewer is evicted
	ViewerSweepInterval time.Duration // how often idle viewers are swept

	AMQPURL      string // RabbitMQ URL, empty disables booking events
	AuditLogPath string // file the booking event consumer appends to
}

// Load reads .env (when present) and the environment and returns a Config.
// Missing required variables or an invalid combination stop the process.
func Load() Config {
	LoadDotEnv()
	cfg := Config{
		Env:      must("APP_ENV"),  // environment (dev/test/prod)
		Port:     must("APP_PORT"), // port to bind the HTTP server
		LogLevel: envStr("LOG_LEVEL", "info"),

		UpstreamURL:     must("UPSTREAM_URL"),
		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT", 0),

		JWTSecret:     must("JWT_SECRET"), // secret used for signing session cookies
		SessionTTL:    time.Duration(envInt("SESSION_TTL_MIN", 720)) * time.Minute,
		SessionCookie: envStr("SESSION_COOKIE", "admin_session"),
		CookieSecure:  envBool("SESSION_COOKIE_SECURE", false),
		SessionPrefix: envStr("SESSION_PREFIX", "cinema"),

		SeatRows:                  envInt("SEAT_ROWS", 8),
		SeatsPerRow:               envInt("SEATS_PER_ROW", 12),
		OccupancyExcludeCancelled: envBool("OCCUPANCY_EXCLUDE_CANCELLED", false),

		BcryptCost: envInt("BCRYPT_COST", 0),

		ViewerIdleTTL:       envDur("VIEWER_IDLE_TTL", 30*time.Minute),
		ViewerSweepInterval: envDur("VIEWER_SWEEP_INTERVAL", time.Minute),

		AMQPURL:      amqpURL(),
		AuditLogPath: envStr("AUDIT_LOG_PATH", "logs/booking_status.log"),
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	return cfg
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("could not read .env")
	}
}

// Validate checks the values that have no safe fallback.
func (c Config) Validate() error {
	if c.SeatRows <= 0 {
		return &apperr.ConfigError{Field: "SEAT_ROWS", Reason: "must be positive"}
	}
	if c.SeatsPerRow <= 0 {
		return &apperr.ConfigError{Field: "SEATS_PER_ROW", Reason: "must be positive"}
	}
	if c.SessionTTL <= 0 {
		return &apperr.ConfigError{Field: "SESSION_TTL_MIN", Reason: "must be positive"}
	}
	if c.BcryptCost < 0 || c.BcryptCost > 31 {
		return &apperr.ConfigError{Field: "BCRYPT_COST", Reason: "must be between 0 and 31"}
	}
	if c.ViewerIdleTTL <= 0 || c.ViewerSweepInterval <= 0 {
		return &apperr.ConfigError{Field: "VIEWER_IDLE_TTL", Reason: "viewer timings must be positive"}
	}
	return nil
}

// amqpURL mirrors the broker lookup of the event consumer: RABBITMQ_URL,
// then AMQP_URL.
func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}
