package cli

import (
	"time"

	"github.com/Backland-Labs/runsnap/internal/config"
	"github.com/Backland-Labs/runsnap/internal/logger"
	"github.com/Backland-Labs/runsnap/internal/output"
	"github.com/Backland-Labs/runsnap/internal/trigger"
)

// ConfigLoader interface for dependency injection in tests
type ConfigLoader interface {
	Load(env config.Environment) (*config.Config, error)
}

// ClientFactory builds the Trigger.dev client for a loaded config
type ClientFactory interface {
	NewClient(cfg *config.Config) (trigger.Client, error)
}

// Real implementations for production use

// RealConfigLoader loads .env from the working directory, then reads config
// from the environment
type RealConfigLoader struct{}

func (r *RealConfigLoader) Load(env config.Environment) (*config.Config, error) {
	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return nil, err
	}
	// .env may carry RUNSNAP_LOG_* settings
	if err := logger.Initialize(); err != nil {
		return nil, err
	}
	return config.New(env)
}

// RealClientFactory creates HTTP clients against cfg.APIURL
type RealClientFactory struct{}

func (r *RealClientFactory) NewClient(cfg *config.Config) (trigger.Client, error) {
	return trigger.NewClient(cfg.SecretKey,
		trigger.WithBaseURL(cfg.APIURL),
		trigger.WithTimeout(cfg.Timeout),
		trigger.WithUserAgent("runsnap/"+version),
	)
}

// NewRealDependencies creates production dependencies
func NewRealDependencies() *Dependencies {
	return &Dependencies{
		ConfigLoader:  &RealConfigLoader{},
		ClientFactory: &RealClientFactory{},
		Printer:       output.NewPrinter(),
		Now:           time.Now,
	}
}

// Dependencies struct for injection
type Dependencies struct {
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory
	Printer       *output.Printer
	Now           func() time.Time
}
