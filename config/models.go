package config

import "time"

// Config holds the application configuration.
type Config struct {
	APIRoot         string        `mapstructure:"api_root"`
	CACert          string        `mapstructure:"ca_cert"`
	ServerName      string        `mapstructure:"server_name"`
	ListenAddress   string        `mapstructure:"listen_address"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
	LogLevel        string        `mapstructure:"log_level"`
}
