package config

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const DefaultDatasetPath = "Impact_of_Remote_Work_on_Mental_Health.csv"

type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
}

type DatasetConfig struct {
	// Source is a CSV path, s3://bucket/key or duckdb://path.db
	Source   string `mapstructure:"source"`
	S3Region string `mapstructure:"s3_region"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	DuckDBPath string `mapstructure:"duckdb_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var envBindings = map[string]string{
	"dataset.source":    "ATLAS_DATASET",
	"dataset.s3_region": "AWS_REGION",
	"server.host":       "SERVER_HOST",
	"server.port":       "SERVER_PORT",
	"store.duckdb_path": "ATLAS_DUCKDB_PATH",
	"log.level":         "ATLAS_LOG_LEVEL",
}

// LoadConfig reads the optional config file at path, applies defaults and
// environment overrides. An empty path uses defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dataset.source", DefaultDatasetPath)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("store.duckdb_path", "pulse-atlas.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Dataset.Source) == "" {
		return fmt.Errorf("dataset.source is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Addr is the listen address of the web server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// NewLogger builds the root logger. Pretty output is meant for terminals.
func (l LogConfig) NewLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if l.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
