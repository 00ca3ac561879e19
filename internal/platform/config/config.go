// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr         string
	AdminToken   string
	PlatformName string
	LogLevel     string
	LedgerStrict bool
	Workers      int
	ScheduleTick time.Duration
	SeedFile     string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Platform PlatformConfig
	Storage  StorageConfig
	Render   RenderConfig
}

// DatabaseConfig selects PostgreSQL when URL is set; the in-memory stores otherwise.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig enables the Redis work queue when URL is set.
type RedisConfig struct {
	URL          string
	QueueKey     string
	Consumers    int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the Kafka notifier when Brokers is set.
type KafkaConfig struct {
	Brokers     string
	NotifyTopic string
}

// PlatformConfig addresses the host learning platform.
type PlatformConfig struct {
	BaseURL          string
	APIKey           string
	RateLimit        float64
	RateBurst        int
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type StorageConfig struct {
	Type         string
	MediaRoot    string
	MediaURL     string
	RootURL      string
	CustomDomain string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3Prefix     string
	GCSBucket    string
	GCSPrefix    string
}

// RenderConfig controls the issue date printed on credentials.
type RenderConfig struct {
	DateFormat string
	DateLocale string
	TimeZone   string
}

// LoadDotEnv loads variables from path without overriding the environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:         getEnv("CREDENTIALS_ADDR", ":8080"),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		PlatformName: getEnv("PLATFORM_NAME", "Open edX"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LedgerStrict: getBool("LEDGER_STRICT", false),
		Workers:      getInt("WORKERS", 4),
		ScheduleTick: getDuration("SCHEDULE_TICK", time.Minute),
		SeedFile:     os.Getenv("SEED_FILE"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			QueueKey:     getEnv("REDIS_QUEUE_KEY", "coursecred:tasks"),
			Consumers:    getInt("REDIS_CONSUMERS", 2),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:     os.Getenv("KAFKA_BROKERS"),
			NotifyTopic: getEnv("NOTIFY_TOPIC", "credential-notifications"),
		},
		Platform: PlatformConfig{
			BaseURL:          getEnv("PLATFORM_BASE_URL", "http://localhost:8000"),
			APIKey:           os.Getenv("PLATFORM_API_KEY"),
			RateLimit:        getFloat("PLATFORM_RATE_LIMIT", 0),
			RateBurst:        getInt("PLATFORM_RATE_BURST", 1),
			BreakerThreshold: getInt("PLATFORM_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  getDuration("PLATFORM_BREAKER_COOLDOWN", 30*time.Second),
		},
		Storage: StorageConfig{
			Type:         getEnv("STORAGE_TYPE", "fs"),
			MediaRoot:    getEnv("MEDIA_ROOT", "./media"),
			MediaURL:     getEnv("MEDIA_URL", "/media/"),
			RootURL:      getEnv("ROOT_URL", "http://localhost:8080"),
			CustomDomain: os.Getenv("CREDENTIALS_CUSTOM_DOMAIN"),
			S3Bucket:     os.Getenv("S3_BUCKET"),
			S3Region:     getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:   os.Getenv("S3_ENDPOINT"),
			S3Prefix:     os.Getenv("S3_PREFIX"),
			GCSBucket:    os.Getenv("GCS_BUCKET"),
			GCSPrefix:    os.Getenv("GCS_PREFIX"),
		},
		Render: RenderConfig{
			DateFormat: os.Getenv("CREDENTIAL_DATE_FORMAT"),
			DateLocale: getEnv("CREDENTIAL_DATE_LOCALE", "en_US"),
			TimeZone:   getEnv("TIME_ZONE", "UTC"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
