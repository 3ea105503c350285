package config

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// The global, read-only config variable.
var (
	cfg  *Config
	once sync.Once
)

// Load reads and validates the YAML config file at configFile.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("monitor_interval", "1s")
	v.SetDefault("log_level", "info")

	// Read in the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal the config into the Config struct
	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validation
	if configuration.APIRoot == "" {
		return nil, errors.NotValidf("missing api_root")
	}
	u, err := url.Parse(configuration.APIRoot)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return nil, errors.NotValidf("api_root %q", configuration.APIRoot)
	}
	if configuration.CACert == "" {
		return nil, errors.NotValidf("missing ca_cert")
	}
	return &configuration, nil
}

// LoadConfig reads the config file, parses it, and initializes the global cfg variable.
// It ensures that the configuration is set only once.
func LoadConfig(configFile string) (*Config, error) {
	var err error
	once.Do(func() {
		cfg, err = Load(configFile)
	})

	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, errors.New("configuration was not set")
	}

	return cfg, nil
}

// GetConfig returns the loaded configuration.
// It panics if the configuration has not been set.
func GetConfig() *Config {
	if cfg == nil {
		panic("Config has not been set! Call LoadConfig first.")
	}
	return cfg
}
