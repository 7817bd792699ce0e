package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // pretty, json
	DBPath    string `mapstructure:"db_path"`
	// Cache backend: memory, redis
	CacheBackend  string        `mapstructure:"cache_backend"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	// Concurrency for batch verify and rank
	Workers      int           `mapstructure:"workers"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

var AppConfig *Config

// Keys lists every recognised configuration key
var Keys = []string{
	"log_level", "log_format", "db_path",
	"cache_backend", "cache_ttl",
	"redis_addr", "redis_password", "redis_db",
	"workers", "fetch_timeout",
}

const envPrefix = "INTERNLY"

// Initialize loads or creates ~/.internly/config.yaml
func Initialize() error {
	dir, err := DefaultDir()
	if err != nil {
		return err
	}
	return InitializeAt(dir)
}

// DefaultDir is the directory holding the config file and database
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".internly"), nil
}

// InitializeAt loads or creates config.yaml inside dir. Values from a .env
// file in the working directory and INTERNLY_* environment variables
// override the file.
func InitializeAt(dir string) error {
	cfg, err := loadAt(dir)
	if err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load reads the config like Initialize but skips validation, so that a
// file holding a bad value can still be shown and repaired.
func Load() error {
	dir, err := DefaultDir()
	if err != nil {
		return err
	}
	cfg, err := loadAt(dir)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func loadAt(dir string) (*Config, error) {
	configFile := filepath.Join(dir, "config.yaml")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return nil, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	viper.Reset()
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "pretty")
	viper.SetDefault("db_path", filepath.Join(dir, "internly.db"))
	viper.SetDefault("cache_backend", "memory")
	viper.SetDefault("cache_ttl", "1h")
	viper.SetDefault("redis_addr", "localhost:6379")
	viper.SetDefault("redis_password", "")
	viper.SetDefault("redis_db", 0)
	viper.SetDefault("workers", 4)
	viper.SetDefault("fetch_timeout", "30s")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return fmt.Errorf("cache_backend must be memory or redis, got %q", c.CacheBackend)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Internly Configuration
# Log level: debug, info, warn, error
log_level: info
# Log format: pretty, json
log_format: pretty

# Cache backend: memory, redis
cache_backend: memory
cache_ttl: 1h
redis_addr: localhost:6379
redis_password: ""
redis_db: 0

# Parallel workers for verify --all and rank
workers: 4
# Timeout for listing fetch
fetch_timeout: 30s
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value. The file is only written when the
// resulting configuration is valid.
func Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	previous := viper.Get(key)
	viper.Set(key, value)

	candidate := &Config{}
	err := viper.Unmarshal(candidate)
	if err == nil {
		err = candidate.validate()
	}
	if err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	dir, _ := DefaultDir()
	return filepath.Join(dir, "config.yaml")
}
