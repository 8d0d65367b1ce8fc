package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// ControllerVersion is the protocol version this controller speaks. Workers
// and clients must send a matching targetVersion header with every request.
const ControllerVersion = "1.0.0"

// Config global configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	State  StateConfig  `yaml:"state"`
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port     int      `yaml:"port"`
	Mode     string   `yaml:"mode"`      // debug, release
	AuthKeys []string `yaml:"auth_keys"` // pre-shared keys accepted from clients and workers
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig Redis configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StateConfig governs the liveness sweeper and staleness periods.
type StateConfig struct {
	DisconnectTimeout   time.Duration `yaml:"disconnect_timeout"`    // worker silence threshold before ONLINE -> OFFLINE
	SystemInfoRefresh   time.Duration `yaml:"system_info_refresh"`   // how old a system info snapshot may get
	FunctionListRefresh time.Duration `yaml:"function_list_refresh"` // how old a worker function list may get
	SweepInterval       time.Duration `yaml:"sweep_interval"`        // period of the background sweep
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

const (
	defaultDisconnectTimeout   = 5 * time.Second
	defaultSystemInfoRefresh   = time.Minute
	defaultFunctionListRefresh = time.Hour
	defaultSweepInterval       = time.Second
)

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	applyStateDefaults(&cfg.State)

	GlobalConfig = &cfg
	return nil
}

// applyStateDefaults replaces zero or negative durations with defaults so a
// partially filled config never disables the sweeper.
func applyStateDefaults(s *StateConfig) {
	if s.DisconnectTimeout <= 0 {
		s.DisconnectTimeout = defaultDisconnectTimeout
	}
	if s.SystemInfoRefresh <= 0 {
		s.SystemInfoRefresh = defaultSystemInfoRefresh
	}
	if s.FunctionListRefresh <= 0 {
		s.FunctionListRefresh = defaultFunctionListRefresh
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = defaultSweepInterval
	}
}
