// Package config handles application configuration loading from environment
// variables and an optional config file. It provides a centralized Config
// struct used across the application.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys. Each key is also read from the upper-cased environment
// variable of the same name (app_host from APP_HOST).
const (
	KeyHost = "app_host"
	KeyPort = "app_port"
	KeyEnv  = "app_env"

	KeyDBHost     = "postgres_host"
	KeyDBPort     = "postgres_port"
	KeyDBUser     = "postgres_user"
	KeyDBPassword = "postgres_password"
	KeyDBName     = "postgres_db"

	KeyValkeyHost     = "valkey_host"
	KeyValkeyPort     = "valkey_port"
	KeyValkeyPassword = "valkey_password"
	KeyCacheDriver    = "cache_driver"
	KeyCacheTTL       = "cache_ttl"

	KeyS3Endpoint  = "s3_endpoint"
	KeyS3Region    = "s3_region"
	KeyS3AccessKey = "s3_access_key"
	KeyS3SecretKey = "s3_secret_key"
	KeyS3Bucket    = "s3_bucket"
	KeyS3PublicURL = "s3_public_url"

	KeyCORSOrigins = "cors_origins"
	KeyRateLimit   = "rate_limit"

	KeyOTELEnabled  = "otel_enabled"
	KeyOTELStdout   = "otel_stdout"
	KeyOTELEndpoint = "otel_exporter_otlp_endpoint"

	KeySiteName = "site_name"
)

const defaultDBPassword = "changeme"

// Cache drivers. The memory driver is local to one process and is only
// correct for a single instance.
const (
	CacheDriverValkey = "valkey"
	CacheDriverMemory = "memory"
	CacheDriverNone   = "none"
)

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). CacheDriver selects where public
	// query results are cached; see the CacheDriver* constants.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheDriver    string
	CacheTTL       time.Duration

	// S3-compatible object storage for post images
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// API exposure
	CORSOrigins []string
	RateLimit   int // mutations per minute per client IP, 0 disables

	// OpenTelemetry
	OTELEnabled  bool
	OTELStdout   bool
	OTELEndpoint string

	SiteName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyHost, "0.0.0.0")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyEnv, "development")

	v.SetDefault(KeyDBHost, "localhost")
	v.SetDefault(KeyDBPort, "5432")
	v.SetDefault(KeyDBUser, "inkwell")
	v.SetDefault(KeyDBPassword, defaultDBPassword)
	v.SetDefault(KeyDBName, "inkwell")

	v.SetDefault(KeyValkeyHost, "localhost")
	v.SetDefault(KeyValkeyPort, "6379")
	v.SetDefault(KeyCacheDriver, CacheDriverValkey)
	v.SetDefault(KeyCacheTTL, "5m")

	v.SetDefault(KeyS3Region, "us-east-1")

	v.SetDefault(KeyCORSOrigins, "*")
	v.SetDefault(KeyRateLimit, 60)

	v.SetDefault(KeyOTELEnabled, false)
	v.SetDefault(KeyOTELStdout, false)

	v.SetDefault(KeySiteName, "Inkwell")
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an additional YAML/JSON/TOML config file whose keys
// are the lower-case variable names. Environment variables take precedence
// over the file. An empty path reads the environment only.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Host: v.GetString(KeyHost),
		Port: v.GetString(KeyPort),
		Env:  v.GetString(KeyEnv),

		DBHost:     v.GetString(KeyDBHost),
		DBPort:     v.GetString(KeyDBPort),
		DBUser:     v.GetString(KeyDBUser),
		DBPassword: v.GetString(KeyDBPassword),
		DBName:     v.GetString(KeyDBName),

		ValkeyHost:     v.GetString(KeyValkeyHost),
		ValkeyPort:     v.GetString(KeyValkeyPort),
		ValkeyPassword: v.GetString(KeyValkeyPassword),
		CacheDriver:    strings.ToLower(strings.TrimSpace(v.GetString(KeyCacheDriver))),
		CacheTTL:       v.GetDuration(KeyCacheTTL),

		S3Endpoint:  v.GetString(KeyS3Endpoint),
		S3Region:    v.GetString(KeyS3Region),
		S3AccessKey: v.GetString(KeyS3AccessKey),
		S3SecretKey: v.GetString(KeyS3SecretKey),
		S3Bucket:    v.GetString(KeyS3Bucket),
		S3PublicURL: v.GetString(KeyS3PublicURL),

		CORSOrigins: splitList(v.GetString(KeyCORSOrigins)),
		RateLimit:   v.GetInt(KeyRateLimit),

		OTELEnabled:  v.GetBool(KeyOTELEnabled),
		OTELStdout:   v.GetBool(KeyOTELStdout),
		OTELEndpoint: v.GetString(KeyOTELEndpoint),

		SiteName: v.GetString(KeySiteName),
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", v.GetString(KeyCacheTTL))
	}
	switch cfg.CacheDriver {
	case CacheDriverValkey, CacheDriverMemory, CacheDriverNone:
	default:
		return nil, fmt.Errorf("CACHE_DRIVER must be one of valkey, memory, none, got %q", cfg.CacheDriver)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must not be negative")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultDBPassword {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, net.JoinHostPort(c.DBHost, c.DBPort), c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StorageConfigured reports whether enough S3 settings are present to
// allocate upload URLs.
func (c *Config) StorageConfigured() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
