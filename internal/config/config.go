// Package config provides configuration management for the runsnap CLI.
// It loads configuration from environment variables (optionally seeded from a
// .env file) with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment names the Trigger.dev environment a snapshot is taken from
type Environment string

const (
	// EnvironmentDev is the development/staging environment
	EnvironmentDev Environment = "dev"
	// EnvironmentProd is the production environment
	EnvironmentProd Environment = "prod"
)

// Secret key variables, in resolution order per environment
const (
	SecretKeyVar        = "TRIGGER_SECRET_KEY"
	SecretKeyProdVar    = "TRIGGER_SECRET_KEY_PROD"
	SecretKeyStagingVar = "TRIGGER_SECRET_KEY_STAGING"
)

const (
	// DefaultAPIURL is the hosted Trigger.dev API
	DefaultAPIURL = "https://api.trigger.dev"

	// DotEnvFile is loaded from the working directory when present
	DotEnvFile = ".env"
)

// MissingKeyError reports that no secret key resolved for an environment
type MissingKeyError struct {
	Environment Environment
	// Variable is the variable the user is asked to set
	Variable string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no API key found for environment: %s", e.Environment)
}

// Config holds all configuration for a snapshot invocation
type Config struct {
	// Environment is the selected environment (prod or dev)
	Environment Environment

	// SecretKey authenticates calls to the Trigger.dev API
	SecretKey string

	// APIURL is the Trigger.dev API base URL
	APIURL string

	// SnapshotDir is where reports and latest.md are written
	SnapshotDir string

	// Timeout bounds each HTTP request; zero means no local timeout
	Timeout time.Duration
}

// ResolveEnvironment picks the environment from the CLI flags.
// --prod wins; anything else is dev.
func ResolveEnvironment(prod, dev bool) Environment {
	if prod {
		return EnvironmentProd
	}
	return EnvironmentDev
}

// ResolveSecretKey returns the secret key for env using lookup (usually
// os.LookupEnv). The environment-specific variable is tried first, then the
// shared TRIGGER_SECRET_KEY.
func ResolveSecretKey(env Environment, lookup func(string) (string, bool)) (string, error) {
	specific := SecretKeyStagingVar
	missing := SecretKeyVar
	if env == EnvironmentProd {
		specific = SecretKeyProdVar
		missing = SecretKeyProdVar
	}

	for _, name := range []string{specific, SecretKeyVar} {
		if v, ok := lookup(name); ok && v != "" {
			return v, nil
		}
	}
	return "", &MissingKeyError{Environment: env, Variable: missing}
}

// LoadDotEnv loads path into the process environment if it exists.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// New creates a Config for env from environment variables
func New(env Environment) (*Config, error) {
	cfg := &Config{Environment: env}

	key, err := ResolveSecretKey(env, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.SecretKey = key

	// Load APIURL - defaults to the hosted API
	apiURL := os.Getenv("TRIGGER_API_URL")
	if apiURL == "" {
		cfg.APIURL = DefaultAPIURL
	} else {
		u, err := url.Parse(apiURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("TRIGGER_API_URL must be an absolute http(s) URL, got: %s", apiURL)
		}
		cfg.APIURL = apiURL
	}

	// Load SnapshotDir - defaults to .agent/snapshots under the current directory
	snapshotDir, exists := os.LookupEnv("RUNSNAP_SNAPSHOT_DIR")
	if !exists {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.SnapshotDir = filepath.Join(cwd, ".agent", "snapshots")
	} else {
		if snapshotDir == "" {
			return nil, fmt.Errorf("RUNSNAP_SNAPSHOT_DIR cannot be empty")
		}
		if !filepath.IsAbs(snapshotDir) {
			return nil, fmt.Errorf("RUNSNAP_SNAPSHOT_DIR must be an absolute path, got: %s", snapshotDir)
		}
		cfg.SnapshotDir = snapshotDir
	}

	// Load Timeout - defaults to none
	timeoutStr := os.Getenv("RUNSNAP_TIMEOUT")
	if timeoutStr != "" {
		secs, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid RUNSNAP_TIMEOUT: %w", err)
		}
		if secs <= 0 {
			return nil, fmt.Errorf("RUNSNAP_TIMEOUT must be positive, got: %d", secs)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// IsProduction returns true if the production environment is selected
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProd
}
