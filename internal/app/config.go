package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/scriptfunc/internal/cache"
	"github.com/specialistvlad/scriptfunc/internal/redisstore"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreDir    = "dir"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

const (
	defaultFunctionsDir = "functions"
	defaultWarmWorkers  = 4
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
	Warm  WarmConfig  `yaml:"warm"`
}

// StoreConfig selects where function artifacts live.
type StoreConfig struct {
	Type  string      `yaml:"type"`           // dir, memory or redis
	Path  string      `yaml:"path,omitempty"` // directory for type dir
	Redis RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig locates the hash holding artifacts for type redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

// CacheConfig bounds the resolution cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WarmConfig configures cache warm-up.
type WarmConfig struct {
	Workers int `yaml:"workers"`
}

// LoadConfig reads a YAML configuration file. The result has not been
// through NewConfig yet, so callers can still apply overrides.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// NewConfig fills in defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Store.Type == "" {
		cfg.Store.Type = StoreDir
	}
	switch cfg.Store.Type {
	case StoreDir:
		if cfg.Store.Path == "" {
			cfg.Store.Path = defaultFunctionsDir
		}
	case StoreMemory:
	case StoreRedis:
		if cfg.Store.Redis.Addr == "" {
			return nil, errors.New("store.redis.addr is required when store.type is 'redis'")
		}
		if cfg.Store.Redis.Key == "" {
			cfg.Store.Redis.Key = redisstore.DefaultKey
		}
	default:
		return nil, fmt.Errorf("invalid store.type '%s': must be 'dir', 'memory' or 'redis'", cfg.Store.Type)
	}

	if cfg.Cache.Capacity < 0 {
		return nil, fmt.Errorf("cache.capacity must not be negative, got %d", cfg.Cache.Capacity)
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = cache.DefaultCapacity
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, errors.New("invalid log format: must be 'text' or 'json'")
	}

	if cfg.Warm.Workers < 0 {
		return nil, fmt.Errorf("warm.workers must not be negative, got %d", cfg.Warm.Workers)
	}
	if cfg.Warm.Workers == 0 {
		cfg.Warm.Workers = defaultWarmWorkers
	}

	return &cfg, nil
}
