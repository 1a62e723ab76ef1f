package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Chat struct {
		Token    string        `yaml:"token" json:"token" jsonschema:"required,description=Bot token (can use environment variable)"`
		APIURL   string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://slack.com/api,description=Chat REST API base URL"`
		Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=REST call timeout"`
		DataHint string        `yaml:"data_hint" json:"data_hint" jsonschema:"description=Link to the collected data shown in help replies"`
	} `yaml:"chat" json:"chat" jsonschema:"description=Chat backend configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:kippino.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		PassInterval time.Duration `yaml:"pass_interval" json:"pass_interval" jsonschema:"default=1h,description=Interval between periodic scheduling passes"`
		Debounce     time.Duration `yaml:"debounce" json:"debounce" jsonschema:"default=10s,description=Quiet window collapsing bursts of reload triggers"`
		PauseTTL     time.Duration `yaml:"pause_ttl" json:"pause_ttl" jsonschema:"default=24h,description=How long a skipped question stays suppressed"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status API server configuration"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for chat
	if cfg.Chat.APIURL == "" {
		cfg.Chat.APIURL = "https://slack.com/api"
	}
	if cfg.Chat.Timeout == 0 {
		cfg.Chat.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:kippino.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.PassInterval == 0 {
		cfg.Schedule.PassInterval = time.Hour
	}
	if cfg.Schedule.Debounce == 0 {
		cfg.Schedule.Debounce = 10 * time.Second
	}
	if cfg.Schedule.PauseTTL == 0 {
		cfg.Schedule.PauseTTL = 24 * time.Hour
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {

	// validate chat config
	if cfg.Chat.Token == "" {
		return fmt.Errorf("chat.token is required")
	}
	if cfg.Chat.Timeout < time.Second {
		return fmt.Errorf("chat timeout must be at least 1 second")
	}

	// validate schedule config
	if cfg.Schedule.PassInterval < time.Minute {
		return fmt.Errorf("schedule pass_interval must be at least 1 minute")
	}
	if cfg.Schedule.Debounce < time.Second {
		return fmt.Errorf("schedule debounce must be at least 1 second")
	}
	if cfg.Schedule.PauseTTL < time.Minute {
		return fmt.Errorf("schedule pause_ttl must be at least 1 minute")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
