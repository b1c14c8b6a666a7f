package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the TOML configuration for the reservation client
type Config struct {
	API     APIConfig     `toml:"api"`
	Context ContextConfig `toml:"context"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Watch   WatchConfig   `toml:"watch"`
	Events  EventsConfig  `toml:"events"`
}

// APIConfig backend connection settings
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // seconds
}

// ContextConfig default tenant/user identity for backend calls
type ContextConfig struct {
	TenantID int64 `toml:"tenant_id"`
	UserID   int64 `toml:"user_id"`
	UnitID   int64 `toml:"unit_id"`
}

// LogsConfig logging settings
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig Prometheus settings
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// WatchConfig settings for watch mode (poller + status endpoints)
type WatchConfig struct {
	ListenAddr   string `toml:"listen_addr"`
	PollInterval int    `toml:"poll_interval"` // seconds
}

// EventsConfig reservation lifecycle event publishing
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	AmqpURL string `toml:"amqp_url"`
	Queue   string `toml:"queue"`
}

// Load reads the configuration file and applies defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("config: api.base_url is required")
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 10
	}
	if cfg.Watch.PollInterval <= 0 {
		cfg.Watch.PollInterval = 30
	}
	if cfg.Events.Enabled && cfg.Events.AmqpURL == "" {
		return nil, fmt.Errorf("config: events.amqp_url is required when events are enabled")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "condo-reservas",
			Path:        "/metrics",
		},
		Watch: WatchConfig{
			ListenAddr:   ":9180",
			PollInterval: 30,
		},
		Events: EventsConfig{
			Queue: "reservas.events",
		},
	}
}
