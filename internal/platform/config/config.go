package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Comment delete policies. The thread store never cascades implicitly: the
// active policy is a deployment decision and is validated at startup.
const (
	CommentDeleteOrphan  = "orphan"
	CommentDeleteCascade = "cascade"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	JWT      JWTConfig      `json:"jwt"`
	Cache    CacheConfig    `json:"cache"`
	App      AppConfig      `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	WebDomain string `json:"webDomain"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	PublicKey       string        `json:"publicKey"`
	PrivateKey      string        `json:"privateKey"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	Backend string        `json:"backend"` // "memory" or "redis"
	Prefix  string        `json:"prefix"`
	TTL     time.Duration `json:"ttl"`
	Redis   RedisConfig   `json:"redis"`
}

// RedisConfig holds redis backend configuration
type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	Database int    `json:"database"`
	PoolSize int    `json:"poolSize"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name string `json:"name"`

	// DefaultPageSize is the system-wide pagination default. The nested
	// comment page on blog detail uses this same default so the two
	// pagination surfaces stay consistent.
	DefaultPageSize int `json:"defaultPageSize"`

	// CommentDeletePolicy controls what happens to replies when a comment
	// is deleted: "orphan" keeps them (they stay reachable through the
	// orphan-tolerant read path), "cascade" removes the whole subtree.
	CommentDeletePolicy string `json:"commentDeletePolicy"`
}

// LoadFromEnv loads configuration with the following precedence:
// 1. Explicit environment variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() reads the .env file into the environment for this
	// process only if the variables are not already set, which gives the
	// precedence above.
	if err := godotenv.Load(); err != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:      getEnvOrDefault("HOST", "localhost"),
			Port:      getEnvAsInt("SERVER_PORT", 8080),
			WebDomain: getEnvOrDefault("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USERNAME", ""),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DATABASE", "blogapi"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey:       getEnvOrDefault("JWT_PUBLIC_KEY", ""),
			PrivateKey:      getEnvOrDefault("JWT_PRIVATE_KEY", ""),
			AccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 1*time.Hour),
			RefreshTokenTTL: getEnvAsDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Cache: CacheConfig{
			Enabled: getEnvAsBool("CACHE_ENABLED", true),
			Backend: getEnvOrDefault("CACHE_BACKEND", "memory"),
			Prefix:  getEnvOrDefault("CACHE_PREFIX", "blogapi:"),
			TTL:     getEnvAsDuration("CACHE_TTL", 1*time.Hour),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				Database: getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
			},
		},
		App: AppConfig{
			Name:                getEnvOrDefault("APP_NAME", "blogapi"),
			DefaultPageSize:     getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
			CommentDeletePolicy: getEnvOrDefault("COMMENT_DELETE_POLICY", CommentDeleteOrphan),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadFromMap loads configuration from an in-memory map.
// This is the primary helper for testing configuration logic in isolation
// without manipulating global environment variables.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, exists := envMap[key]; exists {
			return value
		}
		return defaultValue
	}

	getInt := func(key string, defaultValue int) int {
		if value, exists := envMap[key]; exists {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		return defaultValue
	}

	getBool := func(key string, defaultValue bool) bool {
		if value, exists := envMap[key]; exists {
			if boolValue, err := strconv.ParseBool(value); err == nil {
				return boolValue
			}
		}
		return defaultValue
	}

	getDuration := func(key string, defaultValue time.Duration) time.Duration {
		if value, exists := envMap[key]; exists {
			if duration, err := time.ParseDuration(value); err == nil {
				return duration
			}
		}
		return defaultValue
	}

	config := &Config{
		Server: ServerConfig{
			Host:      get("HOST", "localhost"),
			Port:      getInt("SERVER_PORT", 8080),
			WebDomain: get("WEB_DOMAIN", "http://localhost:3000"),
			Debug:     getBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            get("POSTGRES_HOST", "localhost"),
				Port:            getInt("POSTGRES_PORT", 5432),
				Username:        get("POSTGRES_USERNAME", ""),
				Password:        get("POSTGRES_PASSWORD", ""),
				Database:        get("POSTGRES_DATABASE", "blogapi"),
				SSLMode:         get("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(getInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
				ConnectTimeout:  getInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			PublicKey:       get("JWT_PUBLIC_KEY", ""),
			PrivateKey:      get("JWT_PRIVATE_KEY", ""),
			AccessTokenTTL:  getDuration("JWT_ACCESS_TOKEN_TTL", 1*time.Hour),
			RefreshTokenTTL: getDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Cache: CacheConfig{
			Enabled: getBool("CACHE_ENABLED", true),
			Backend: get("CACHE_BACKEND", "memory"),
			Prefix:  get("CACHE_PREFIX", "blogapi:"),
			TTL:     getDuration("CACHE_TTL", 1*time.Hour),
			Redis: RedisConfig{
				Address:  get("REDIS_ADDRESS", "localhost:6379"),
				Password: get("REDIS_PASSWORD", ""),
				Database: getInt("REDIS_DATABASE", 0),
				PoolSize: getInt("REDIS_POOL_SIZE", 10),
			},
		},
		App: AppConfig{
			Name:                get("APP_NAME", "blogapi"),
			DefaultPageSize:     getInt("DEFAULT_PAGE_SIZE", 10),
			CommentDeletePolicy: get("COMMENT_DELETE_POLICY", CommentDeleteOrphan),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.JWT.PublicKey) == "" {
		errs = append(errs, "JWT_PUBLIC_KEY is required")
	}
	if strings.TrimSpace(c.JWT.PrivateKey) == "" {
		errs = append(errs, "JWT_PRIVATE_KEY is required")
	}

	if c.App.DefaultPageSize < 1 {
		errs = append(errs, "DEFAULT_PAGE_SIZE must be at least 1")
	}

	switch c.App.CommentDeletePolicy {
	case CommentDeleteOrphan, CommentDeleteCascade:
	default:
		errs = append(errs, fmt.Sprintf("COMMENT_DELETE_POLICY must be %q or %q", CommentDeleteOrphan, CommentDeleteCascade))
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, `CACHE_BACKEND must be "memory" or "redis"`)
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
