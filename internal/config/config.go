package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// ModeHosted binds all interfaces on the platform-assigned port.
	ModeHosted = "hosted"
	// ModeLocal binds localhost on a fixed port and opens a browser tab.
	ModeLocal = "local"
)

const localPort = 8051

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Session SessionConfig
	Browser BrowserConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Mode string
	Host string
	Port int
}

type DataConfig struct {
	Path string
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type BrowserConfig struct {
	AutoOpen bool
	Delay    time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	mode := getEnv("DASHBOARD_MODE", ModeLocal)

	server := ServerConfig{Mode: mode}
	switch mode {
	case ModeHosted:
		server.Host = "0.0.0.0"
		server.Port = getEnvInt("PORT", 10000)
	default:
		server.Host = "127.0.0.1"
		server.Port = localPort
	}

	cfg := &Config{
		Server: server,
		Data: DataConfig{
			Path: getEnv("DATA_PATH", "./data/disaster_map.json"),
		},
		Session: SessionConfig{
			TTL:           getEnvDuration("SESSION_TTL", 30*time.Minute),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
		Browser: BrowserConfig{
			AutoOpen: getEnvBool("OPEN_BROWSER", mode == ModeLocal),
			Delay:    getEnvDuration("OPEN_BROWSER_DELAY", time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Mode != ModeHosted && c.Server.Mode != ModeLocal {
		return fmt.Errorf("invalid dashboard mode: %s", c.Server.Mode)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data path must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session sweep interval must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
