package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dynamo  DynamoConfig  `yaml:"dynamo"`
	Decode  DecodeConfig  `yaml:"decode"`
	Logging LoggingConfig `yaml:"logging"`
	Sentry  SentryConfig  `yaml:"sentry"`
	Watch   WatchConfig   `yaml:"watch"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DynamoConfig points at the song table. An empty Endpoint means songs are
// not stored.
type DynamoConfig struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type DecodeConfig struct {
	// Workers bounds parallel song decoding; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Dynamo: DynamoConfig{
			Region: "localhost",
			Table:  "ireal-songs",
		},
		Logging: LoggingConfig{Level: "info"},
		Watch:   WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

// Load reads a YAML file over the defaults and then applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("IREAL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("IREAL_DYNAMO_ENDPOINT"); v != "" {
		c.Dynamo.Endpoint = v
	}
	if v := os.Getenv("IREAL_DYNAMO_TABLE"); v != "" {
		c.Dynamo.Table = v
	}
	if v := os.Getenv("IREAL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.Sentry.DSN = v
	}
	if v := os.Getenv("IREAL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IREAL_WORKERS: %w", err)
		}
		c.Decode.Workers = n
	}
	return nil
}
