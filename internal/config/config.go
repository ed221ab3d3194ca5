package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig holds Redis settings for single, sentinel and cluster modes
type RedisConfig struct {
	// Mode is "single", "sentinel" or "cluster"
	Mode string `mapstructure:"mode"`

	// Addrs lists sentinel or cluster node addresses
	Addrs []string `mapstructure:"addrs"`

	// Addr is the single-node address
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // ms
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // ms
}

// JWTConfig holds token settings
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
}

// RateLimitConfig limits requests per client IP per route group
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Submit  int           `mapstructure:"submit"` // submissions per window
	Auth    int           `mapstructure:"auth"`   // login/register attempts per window
	Window  time.Duration `mapstructure:"window"`
}

// AssessmentConfig tunes scoring, aggregation and ranking
type AssessmentConfig struct {
	WindowSize      int     `mapstructure:"window_size"`
	HardThreshold   float64 `mapstructure:"hard_threshold"`
	EasyThreshold   float64 `mapstructure:"easy_threshold"`
	DefaultAccuracy float64 `mapstructure:"default_accuracy"`

	// WeakThreshold: subjects with accuracy below it are weak topics
	WeakThreshold float64 `mapstructure:"weak_threshold"`
	// HistoryLimit caps how many recent results feed the performance summary and export
	HistoryLimit int `mapstructure:"history_limit"`
	// CountZeroTimeSpent makes a recorded 0 count towards the average time
	CountZeroTimeSpent bool `mapstructure:"count_zero_time_spent"`

	LeaderboardDefaultLimit int           `mapstructure:"leaderboard_default_limit"`
	LeaderboardMaxLimit     int           `mapstructure:"leaderboard_max_limit"`
	LeaderboardCacheTTL     time.Duration `mapstructure:"leaderboard_cache_ttl"`
	SubjectNameCacheTTL     time.Duration `mapstructure:"subject_name_cache_ttl"`
}

// PostgresConnectionString builds a keyword/value DSN
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL builds a postgres:// URL for golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.cors_origins", []string{"*"})

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")

	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")
	vip.SetDefault("redis.max_retries", 3)
	vip.SetDefault("redis.min_retry_backoff", 8)
	vip.SetDefault("redis.max_retry_backoff", 512)

	vip.SetDefault("jwt.expiration_hrs", 168)

	vip.SetDefault("rate_limit.enabled", true)
	vip.SetDefault("rate_limit.submit", 60)
	vip.SetDefault("rate_limit.auth", 10)
	vip.SetDefault("rate_limit.window", time.Minute)

	vip.SetDefault("assessment.window_size", 5)
	vip.SetDefault("assessment.hard_threshold", 0.8)
	vip.SetDefault("assessment.easy_threshold", 0.4)
	vip.SetDefault("assessment.default_accuracy", 0.5)
	vip.SetDefault("assessment.weak_threshold", 0.6)
	vip.SetDefault("assessment.history_limit", 10000)
	vip.SetDefault("assessment.count_zero_time_spent", false)
	vip.SetDefault("assessment.leaderboard_default_limit", 10)
	vip.SetDefault("assessment.leaderboard_max_limit", 100)
	vip.SetDefault("assessment.leaderboard_cache_ttl", 30*time.Second)
	vip.SetDefault("assessment.subject_name_cache_ttl", 10*time.Minute)
}

// Load reads the YAML file at configPath (optional) and overlays environment variables
func Load(configPath string) (*Config, error) {
	vip := viper.New()
	setDefaults(vip)

	// Explicit bindings so Unmarshal sees env-only values
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expiration_hrs", "JWT_EXPIRATION_HRS")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("assessment.count_zero_time_spent", "ASSESSMENT_COUNT_ZERO_TIME_SPENT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("[Config] file '%s' not found, using environment and defaults", configPath)
			} else {
				log.Printf("[Config] WARNING: could not read '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("[Config] database=%s:%s/%s user=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.User, cfg.Database.SSLMode)
		log.Printf("[Config] redis mode=%s addr=%s", cfg.Redis.Mode, cfg.Redis.Addr)
		log.Printf("[Config] server port=%s, jwt expiration=%dh, history_limit=%d",
			cfg.Server.Port, cfg.JWT.ExpirationHrs, cfg.Assessment.HistoryLimit)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required in config (check JWT_SECRET env var)")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.JWT.ExpirationHrs <= 0 {
		return fmt.Errorf("jwt expiration_hrs must be positive, got %d", c.JWT.ExpirationHrs)
	}
	if c.Assessment.HistoryLimit <= 0 {
		return fmt.Errorf("assessment history_limit must be positive, got %d", c.Assessment.HistoryLimit)
	}
	if c.Assessment.LeaderboardMaxLimit < 1 {
		return fmt.Errorf("assessment leaderboard_max_limit must be at least 1")
	}
	return nil
}
