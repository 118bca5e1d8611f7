package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the whispernet server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to sign session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// Gzip enables gzip compression of responses.
	Gzip bool `yaml:"gzip" mapstructure:"gzip"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the list cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Auth holds the authentication configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Messages holds the message posting configuration.
	Messages *MessagesConfig `yaml:"messages" mapstructure:"messages"`
	// Stats holds the configuration of the periodic statistics job.
	Stats *StatsConfig `yaml:"stats" mapstructure:"stats"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the configuration for the list cache.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server if using redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is the lifetime of cached lists in seconds.
	TTL int `yaml:"ttl" mapstructure:"ttl"`
}

// AuthConfig holds the authentication configuration.
type AuthConfig struct {
	// RequireAdmin protects moderation routes with an admin session.
	RequireAdmin bool `yaml:"require_admin" mapstructure:"require_admin"`
	// BootstrapAdmin is seeded on startup if it does not exist yet.
	BootstrapAdmin *BootstrapAdminConfig `yaml:"bootstrap_admin" mapstructure:"bootstrap_admin"`
}

// BootstrapAdminConfig describes the initial admin account.
type BootstrapAdminConfig struct {
	// Username of the bootstrap admin. Seeding is skipped if empty.
	Username string `yaml:"username" mapstructure:"username"`
	// Password of the bootstrap admin. It is stored hashed.
	Password string `yaml:"password" mapstructure:"password"`
	// DisplayName of the bootstrap admin.
	DisplayName string `yaml:"display_name" mapstructure:"display_name"`
}

// MessagesConfig holds the message posting configuration.
type MessagesConfig struct {
	// DefaultPublic is the visibility of messages posted without an explicit isPublic value.
	DefaultPublic bool `yaml:"default_public" mapstructure:"default_public"`
	// MaxContentLength limits the message content in characters.
	MaxContentLength int `yaml:"max_content_length" mapstructure:"max_content_length"`
}

// StatsConfig holds the configuration of the statistics job.
type StatsConfig struct {
	// Enabled toggles the periodic statistics job.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Interval between two runs in minutes.
	Interval int `yaml:"interval" mapstructure:"interval"`
}

// GetCacheTTL returns the cache lifetime as a duration.
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache == nil || c.Cache.TTL <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTL) * time.Second
}

// GetStatsInterval returns the statistics job interval as a duration.
func (c *Config) GetStatsInterval() time.Duration {
	if c.Stats == nil || c.Stats.Interval <= 0 {
		return time.Hour
	}
	return time.Duration(c.Stats.Interval) * time.Minute
}

// GetCacheWarmInterval returns how often the list cache is refilled.
// It follows the cache ttl and falls back to an hour when entries never expire.
func (c *Config) GetCacheWarmInterval() time.Duration {
	if ttl := c.GetCacheTTL(); ttl > 0 {
		return ttl
	}
	return time.Hour
}

// ValidateServer checks the settings only the web server needs.
func (c *Config) ValidateServer() error {
	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	if len(c.SessionKey) < 16 {
		return fmt.Errorf("session key must be at least 16 characters long")
	}
	return nil
}

// RequireAdmin reports whether moderation routes need an admin session.
func (c *Config) RequireAdmin() bool {
	return c.Auth != nil && c.Auth.RequireAdmin
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// bind some weirdly unsupported nested env vars
	bindNestedEnv(v)

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WHISPERNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.whispernet")
		v.AddConfigPath("/etc/whispernet")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the WHISPERNET_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3010")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("gzip", true)

	// Database defaults
	v.SetDefault("database.path", "./data/whispernet.db")

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 300)

	// Auth defaults
	v.SetDefault("auth.require_admin", false)

	// Message defaults
	v.SetDefault("messages.default_public", false)
	v.SetDefault("messages.max_content_length", 2000)

	// Stats defaults
	v.SetDefault("stats.enabled", true)
	v.SetDefault("stats.interval", 60)
}

// the auto env function from viper only works for nested structs, if the struct to which a value binds isn't nil.
// The bootstrap admin has no defaults on purpose, so its env vars have to be bound manually.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("auth.bootstrap_admin.username", "WHISPERNET_AUTH_BOOTSTRAP_ADMIN_USERNAME")
	v.MustBindEnv("auth.bootstrap_admin.password", "WHISPERNET_AUTH_BOOTSTRAP_ADMIN_PASSWORD")
	v.MustBindEnv("auth.bootstrap_admin.display_name", "WHISPERNET_AUTH_BOOTSTRAP_ADMIN_DISPLAY_NAME")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing whispernet config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Cache != nil {
		switch c.Cache.Type {
		case CacheTypeMemory:
		case CacheTypeRedis:
			if c.Cache.RedisURL == "" {
				return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
			}
		default:
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.TTL < 0 {
			return fmt.Errorf("cache ttl must not be negative")
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory, // Default to in-memory cache if not configured
		}
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if b := c.Auth.BootstrapAdmin; b != nil && b.Username != "" {
		if len(b.Password) < 6 {
			return fmt.Errorf("bootstrap admin password must be at least 6 characters long")
		}
	}

	if c.Messages == nil {
		c.Messages = &MessagesConfig{MaxContentLength: 2000}
	}
	if c.Messages.MaxContentLength <= 0 {
		return fmt.Errorf("messages max content length must be greater than 0")
	}

	if c.Stats != nil && c.Stats.Enabled && c.Stats.Interval <= 0 {
		return fmt.Errorf("stats interval must be greater than 0 when stats are enabled")
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.SessionKey = strings.TrimSpace(c.SessionKey)

	if c.Database != nil {
		c.Database.Path = strings.TrimSpace(c.Database.Path)
	}

	if c.Cache != nil {
		c.Cache.Type = CacheType(strings.ToLower(strings.TrimSpace(string(c.Cache.Type))))
		c.Cache.RedisURL = strings.TrimSpace(c.Cache.RedisURL)
	}

	if c.Auth != nil && c.Auth.BootstrapAdmin != nil {
		b := c.Auth.BootstrapAdmin
		b.Username = strings.TrimSpace(b.Username)
		b.DisplayName = strings.TrimSpace(b.DisplayName)
		if b.DisplayName == "" {
			b.DisplayName = b.Username
		}
	}
}
