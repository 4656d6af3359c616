package injectee

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig.
const EnvPrefix = "INJECTEE"

// Config controls the debuggee. There are no flags or files, only the
// environment.
type Config struct {
	// Interval between reports.
	Interval time.Duration `envconfig:"INTERVAL" default:"1s"`
	// Seed for the starting value. Zero means seed from the clock.
	Seed uint32 `envconfig:"SEED" default:"0"`
	// Debug enables debug logging.
	Debug bool `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads Config from INJECTEE_* environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when the environment is empty.
func DefaultConfig() *Config {
	return &Config{
		Interval: DefaultInterval,
	}
}
