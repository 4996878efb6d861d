package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ifuryst/lol"

	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
)

const (
	DefaultPort          = 8000
	DefaultTokenDuration = 30 * time.Minute
	DefaultMaxUploadSize = 10 << 20
	DefaultUploadDir     = "uploads"
	DefaultUploadURL     = "/uploads"
	DefaultCacheTTL      = 30 * time.Second
	DefaultCacheEntries  = 256
)

type (
	APIServerConfig struct {
		Server     ServerConfig     `yaml:"server"`
		PID        string           `yaml:"pid"`
		Database   DatabaseConfig   `yaml:"database"`
		Logger     LoggerConfig     `yaml:"logger"`
		JWT        JWTConfig        `yaml:"jwt"`
		SuperAdmin SuperAdminConfig `yaml:"super_admin"`
		I18n       I18nConfig       `yaml:"i18n"`
		Upload     UploadConfig     `yaml:"upload"`
		Revocation RevocationConfig `yaml:"revocation"`
		Cache      CacheConfig      `yaml:"cache"`
		Scheduler  SchedulerConfig  `yaml:"scheduler"`
		Metrics    MetricsConfig    `yaml:"metrics"`
		Tracing    trace.Config     `yaml:"tracing"`
		CORS       CORSConfig       `yaml:"cors"`
	}

	// ServerConfig holds the HTTP listener settings
	ServerConfig struct {
		Host            string        `yaml:"host"`
		Port            int           `yaml:"port"`
		Mode            string        `yaml:"mode"` // debug, release, test
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	// I18nConfig represents the internationalization configuration
	I18nConfig struct {
		DefaultLang string `yaml:"default_lang"` // en, hi
	}

	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (for mysql), 5432 (for postgres)
		User     string `yaml:"user"`     // root (for mysql), postgres (for postgres)
		Password string `yaml:"password"` // password
		DBName   string `yaml:"dbname"`   // database name, or file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (for postgres)
	}

	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// UploadConfig describes where mortality photos are written and served from
	UploadConfig struct {
		Dir       string `yaml:"dir"`
		MaxSize   int64  `yaml:"max_size"` // bytes
		URLPrefix string `yaml:"url_prefix"`
	}

	// RevocationConfig selects the store for logged-out token ids
	RevocationConfig struct {
		Type  string      `yaml:"type"` // memory or redis
		Redis RedisConfig `yaml:"redis"`
	}

	// CacheConfig controls caching of the admin dashboard and analytics.
	// An empty type disables the cache.
	CacheConfig struct {
		Type       string        `yaml:"type"` // memory, redis
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries int           `yaml:"max_entries"`
		Redis      RedisConfig   `yaml:"redis"`
	}

	// SchedulerConfig sets how often housekeeping jobs run
	SchedulerConfig struct {
		SweepInterval time.Duration `yaml:"sweep_interval"`
	}

	RedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}
)

func (c *APIServerConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	c.Server.ReadTimeout = durationOr(c.Server.ReadTimeout, 15*time.Second)
	c.Server.WriteTimeout = durationOr(c.Server.WriteTimeout, 30*time.Second)
	c.Server.ShutdownTimeout = durationOr(c.Server.ShutdownTimeout, 10*time.Second)
	c.JWT.Duration = durationOr(c.JWT.Duration, DefaultTokenDuration)
	if c.I18n.DefaultLang == "" {
		c.I18n.DefaultLang = "en"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = DefaultUploadDir
	}
	if c.Upload.MaxSize <= 0 {
		c.Upload.MaxSize = DefaultMaxUploadSize
	}
	if c.Upload.URLPrefix == "" {
		c.Upload.URLPrefix = DefaultUploadURL
	}
	c.Upload.URLPrefix = "/" + strings.Trim(c.Upload.URLPrefix, "/")
	if c.Revocation.Type == "" {
		c.Revocation.Type = "memory"
	}
	if c.Cache.Type != "" {
		c.Cache.TTL = durationOr(c.Cache.TTL, DefaultCacheTTL)
		if c.Cache.MaxEntries <= 0 {
			c.Cache.MaxEntries = DefaultCacheEntries
		}
	}
	c.Scheduler.SweepInterval = durationOr(c.Scheduler.SweepInterval, 10*time.Minute)
	c.CORS.AllowOrigins = lol.UniqSlice(c.CORS.AllowOrigins)
	c.CORS.AllowMethods = lol.UniqSlice(c.CORS.AllowMethods)
	c.CORS.AllowHeaders = lol.UniqSlice(c.CORS.AllowHeaders)
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "kukkuta-apiserver"
	}
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return c.getPostgresDSN()
	case "mysql":
		return c.getMySQLDSN()
	case "sqlite":
		if c.DBName == ":memory:" || strings.HasPrefix(c.DBName, "file:") {
			return c.DBName
		}
		// Ensure the directory for the SQLite database exists.
		// If the directory cannot be created, it's a fatal error.
		if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
			panic(fmt.Errorf("failed to create directory for sqlite database: %w", err))
		}
		return c.DBName // For SQLite, DBName is the file path
	default:
		return ""
	}
}

// getPostgresDSN returns PostgreSQL connection string
func (c *DatabaseConfig) getPostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getMySQLDSN returns MySQL connection string. clientFoundRows makes
// RowsAffected report matched rows, which bulk verification relies on.
func (c *DatabaseConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}
