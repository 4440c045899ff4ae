package allure

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/andreivcodes/allure-go/writer"
)

const (
	// EnvResultsDir overrides the results directory.
	EnvResultsDir = "ALLURE_RESULTS_DIR"
	// EnvCleanResults toggles the destructive clean at startup.
	EnvCleanResults = "ALLURE_CLEAN_RESULTS"
)

// Config holds the process-wide runtime configuration. It is written once
// at startup via Configure and read-only thereafter.
type Config struct {
	ResultsDir   string
	CleanResults bool
	// Environment, when non-empty, is written to environment.properties
	// during Configure.
	Environment []writer.Property
	// Log receives write-failure diagnostics. Defaults to the zap global
	// logger when nil.
	Log *zap.Logger
}

// DefaultConfig returns the defaults: the standard results directory with
// a clean at startup.
func DefaultConfig() Config {
	return Config{
		ResultsDir:   writer.DefaultResultsDir,
		CleanResults: true,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvResultsDir); v != "" {
		cfg.ResultsDir = v
	}
	if v := os.Getenv(EnvCleanResults); v != "" {
		if clean, err := strconv.ParseBool(v); err == nil {
			cfg.CleanResults = clean
		}
	}
	return cfg
}

func (c Config) logger() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.L()
}

var (
	configMu sync.RWMutex
	config   = DefaultConfig()
)

// Configure bootstraps the results directory (destructively when
// CleanResults is set), writes environment.properties when entries are
// present, and stores cfg as the process-wide configuration. Call once at
// process start, before any test runs.
func Configure(cfg Config) error {
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = writer.DefaultResultsDir
	}
	w := writer.New(cfg.ResultsDir)
	if err := w.Init(cfg.CleanResults); err != nil {
		return NewConfigError(err)
	}
	if len(cfg.Environment) > 0 {
		if _, err := w.WriteEnvironment(cfg.Environment); err != nil {
			cfg.logger().Warn("failed to write environment.properties", zap.Error(err))
		}
	}

	configMu.Lock()
	config = cfg
	configMu.Unlock()
	return nil
}

// CurrentConfig returns the process-wide configuration.
func CurrentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return config
}
