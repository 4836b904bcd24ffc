// Package config resolves process configuration from an optional .env file
// and GARDEN_* environment variables
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/recorder"
	rosterrepo "github.com/KirkDiggler/doodle-garden/internal/repositories/roster"
)

// Store backends
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Environment variable names
const (
	EnvStore      = "GARDEN_STORE"
	EnvDataDir    = "GARDEN_DATA_DIR"
	EnvRedisAddr  = "GARDEN_REDIS_ADDR"
	EnvDSN        = "GARDEN_DSN"
	EnvRosterKey  = "GARDEN_ROSTER_KEY"
	EnvLogLevel   = "GARDEN_LOG_LEVEL"
	EnvMaxStrokes = "GARDEN_MAX_STROKES"

	EnvRedisTLS        = "GARDEN_REDIS_TLS"
	EnvRedisMaxRetries = "GARDEN_REDIS_MAX_RETRIES"
)

// MaxRedisRetries bounds GARDEN_REDIS_MAX_RETRIES
const MaxRedisRetries = 10

// DefaultEnvFile is read when present
const DefaultEnvFile = ".env"

var (
	stores    = []string{StoreFile, StoreRedis, StoreSQLite, StorePostgres}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config is the resolved process configuration
type Config struct {
	Store      string
	DataDir    string
	RedisAddr  string
	DSN        string
	RosterKey  string
	LogLevel   string
	MaxStrokes int

	RedisTLS        bool
	RedisMaxRetries int
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	dataDir := ".doodle-garden"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, dataDir)
	}

	return &Config{
		Store:      StoreFile,
		DataDir:    dataDir,
		RosterKey:  rosterrepo.DefaultKey,
		LogLevel:   "warn",
		MaxStrokes: recorder.DefaultMaxStrokes,
	}
}

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

// Load resolves the configuration. Values from envFile fill in variables
// missing from lookup; a missing envFile is not an error.
func Load(envFile string, lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
			slog.Debug("loaded env file", "path", envFile, "vars", len(vars))
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "failed to read env file %s", envFile)
		}
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileVars[key])
	}

	cfg := Default()
	if v := get(EnvStore); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := get(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := get(EnvRedisAddr); v != "" {
		cfg.RedisAddr = v
	}
	if v := get(EnvDSN); v != "" {
		cfg.DSN = v
	}
	if v := get(EnvRosterKey); v != "" {
		cfg.RosterKey = v
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := get(EnvMaxStrokes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid %s %q: must be an integer", EnvMaxStrokes, v)
		}
		cfg.MaxStrokes = n
	}
	if v := get(EnvRedisTLS); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid %s %q: must be a boolean", EnvRedisTLS, v)
		}
		cfg.RedisTLS = b
	}
	if v := get(EnvRedisMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid %s %q: must be an integer", EnvRedisMaxRetries, v)
		}
		cfg.RedisMaxRetries = n
	}

	return cfg, nil
}

// Validate checks the configuration is usable for the selected store
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Store", c.Store, stores, vb)
	errors.ValidateEnum("LogLevel", c.LogLevel, logLevels, vb)
	errors.ValidateRequired("RosterKey", c.RosterKey, vb)
	errors.ValidateRange("MaxStrokes", c.MaxStrokes, 1, recorder.MaxStrokesLimit, vb)

	switch c.Store {
	case StoreFile:
		errors.ValidateRequired("DataDir", c.DataDir, vb)
	case StoreRedis:
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
		errors.ValidateRange("RedisMaxRetries", c.RedisMaxRetries, -1, MaxRedisRetries, vb)
	case StoreSQLite:
		if c.DSN == "" {
			errors.ValidateRequired("DataDir", c.DataDir, vb)
		}
	case StorePostgres:
		errors.ValidateRequired("DSN", c.DSN, vb)
	}

	return vb.Build()
}

// SQLiteDSN returns the configured DSN or a database file in the data dir
func (c *Config) SQLiteDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return filepath.Join(c.DataDir, "garden.db")
}

// SlogLevel converts LogLevel for a slog handler
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
