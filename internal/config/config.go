package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. The field layout
// mirrors the dotted option namespace of the system it configures
// (server.port, storage.host, llm.baseUrl, screening.pool.core, ...).
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	LLM       LLMConfig       `yaml:"llm"`
	Screening ScreeningConfig `yaml:"screening"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Sentry    SentryConfig    `yaml:"sentry"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

// StorageConfig holds the data store connection plus the optional S3
// backing for resume blobs.
type StorageConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbName"`
	SSLMode         string        `yaml:"sslMode"`
	MaxConns        int32         `yaml:"maxConns"`
	MinConns        int32         `yaml:"minConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime"`
	S3              S3Config      `yaml:"s3"`
}

type S3Config struct {
	Endpoint        string        `yaml:"endpoint"`
	Bucket          string        `yaml:"bucket"`
	Region          string        `yaml:"region"`
	AccessKey       string        `yaml:"accessKey"`
	SecretKey       string        `yaml:"secretKey"`
	PresignedExpiry time.Duration `yaml:"presignedExpiry"`
}

// Enabled reports whether enough S3 configuration is present to use it as
// the resume blob backing instead of the local filesystem.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

type LLMConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Enabled reports whether a live LLM backend is configured; when false the
// screening orchestrator always falls back to the heuristic analyzer.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// ScreeningConfig shapes the Screening Orchestrator's worker pool.
type ScreeningConfig struct {
	Pool PoolConfig `yaml:"pool"`
}

type PoolConfig struct {
	Core  int `yaml:"core"`
	Max   int `yaml:"max"`
	Queue int `yaml:"queue"`
}

// UploadsConfig is the local-filesystem backing for resume blobs when no
// S3 bucket is configured.
type UploadsConfig struct {
	ResumeDir string `yaml:"resumeDir"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RedisConfig struct {
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// SentryConfig configures panic reporting. Enabled reports whether a DSN
// was supplied; RecoveryMiddleware only reports to the configured hub,
// it never calls sentry.Init itself.
type SentryConfig struct {
	DSN              string  `yaml:"dsn"`
	TracesSampleRate float64 `yaml:"tracesSampleRate"`
}

// Enabled reports whether a DSN is configured, meaning sentry.Init ran.
func (c SentryConfig) Enabled() bool {
	return c.DSN != ""
}

// Load reads an optional YAML config file (ATS_CONFIG_FILE, default
// "config.yaml") and layers ATS_-prefixed environment variable overrides
// on top, falling back to sane defaults when neither is present.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = getEnv("ATS_CONFIG_FILE", "config.yaml")
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Screening.Pool.Core <= 0 || cfg.Screening.Pool.Max < cfg.Screening.Pool.Core || cfg.Screening.Pool.Queue <= 0 {
		return nil, fmt.Errorf("invalid screening pool shape: core=%d max=%d queue=%d",
			cfg.Screening.Pool.Core, cfg.Screening.Pool.Max, cfg.Screening.Pool.Queue)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		Storage: StorageConfig{
			Host:            "localhost",
			Port:            "5432",
			Username:        "ats",
			Password:        "ats",
			DBName:          "ats",
			SSLMode:         "disable",
			MaxConns:        25,
			MinConns:        2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			S3: S3Config{
				PresignedExpiry: 15 * time.Minute,
			},
		},
		LLM: LLMConfig{
			Model:   "claude-sonnet-4-5",
			Timeout: 20 * time.Second,
		},
		Screening: ScreeningConfig{
			Pool: PoolConfig{Core: 2, Max: 5, Queue: 100},
		},
		Uploads: UploadsConfig{ResumeDir: "./data/resumes"},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		Log:     LogConfig{Level: "info", Format: "json"},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
			TTL:  30 * time.Second,
		},
		Sentry: SentryConfig{
			TracesSampleRate: 0.1,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Port = getEnv("ATS_SERVER_PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("ATS_SERVER_ENV", cfg.Server.Env)

	cfg.Storage.Host = getEnv("ATS_DB_HOST", cfg.Storage.Host)
	cfg.Storage.Port = getEnv("ATS_DB_PORT", cfg.Storage.Port)
	cfg.Storage.Username = getEnv("ATS_DB_USER", cfg.Storage.Username)
	cfg.Storage.Password = getEnv("ATS_DB_PASSWORD", cfg.Storage.Password)
	cfg.Storage.DBName = getEnv("ATS_DB_NAME", cfg.Storage.DBName)
	cfg.Storage.SSLMode = getEnv("ATS_DB_SSL_MODE", cfg.Storage.SSLMode)
	cfg.Storage.MaxConns = int32(getEnvAsInt("ATS_DB_MAX_CONNS", int(cfg.Storage.MaxConns)))
	cfg.Storage.MinConns = int32(getEnvAsInt("ATS_DB_MIN_CONNS", int(cfg.Storage.MinConns)))
	cfg.Storage.ConnMaxLifetime = getEnvAsDuration("ATS_DB_CONN_MAX_LIFETIME", cfg.Storage.ConnMaxLifetime)
	cfg.Storage.ConnMaxIdleTime = getEnvAsDuration("ATS_DB_CONN_MAX_IDLE_TIME", cfg.Storage.ConnMaxIdleTime)
	cfg.Storage.S3.Endpoint = getEnv("ATS_S3_ENDPOINT", cfg.Storage.S3.Endpoint)
	cfg.Storage.S3.Bucket = getEnv("ATS_S3_BUCKET", cfg.Storage.S3.Bucket)
	cfg.Storage.S3.Region = getEnv("ATS_S3_REGION", cfg.Storage.S3.Region)
	cfg.Storage.S3.AccessKey = getEnv("ATS_S3_ACCESS_KEY", cfg.Storage.S3.AccessKey)
	cfg.Storage.S3.SecretKey = getEnv("ATS_S3_SECRET_KEY", cfg.Storage.S3.SecretKey)
	cfg.Storage.S3.PresignedExpiry = getEnvAsDuration("ATS_S3_PRESIGNED_EXPIRY", cfg.Storage.S3.PresignedExpiry)

	cfg.LLM.BaseURL = getEnv("ATS_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("ATS_LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("ATS_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Timeout = getEnvAsDuration("ATS_LLM_TIMEOUT", cfg.LLM.Timeout)

	cfg.Screening.Pool.Core = getEnvAsInt("ATS_SCREENING_POOL_CORE", cfg.Screening.Pool.Core)
	cfg.Screening.Pool.Max = getEnvAsInt("ATS_SCREENING_POOL_MAX", cfg.Screening.Pool.Max)
	cfg.Screening.Pool.Queue = getEnvAsInt("ATS_SCREENING_POOL_QUEUE", cfg.Screening.Pool.Queue)

	cfg.Uploads.ResumeDir = getEnv("ATS_UPLOADS_RESUME_DIR", cfg.Uploads.ResumeDir)

	cfg.Log.Level = getEnv("ATS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("ATS_LOG_FORMAT", cfg.Log.Format)

	cfg.Redis.Host = getEnv("ATS_REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnv("ATS_REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("ATS_REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("ATS_REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = getEnvAsDuration("ATS_REDIS_TTL", cfg.Redis.TTL)

	cfg.Sentry.DSN = getEnv("ATS_SENTRY_DSN", cfg.Sentry.DSN)
}

// DSN returns the Postgres connection string.
func (c StorageConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the Redis address.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
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
