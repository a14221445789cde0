package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendDocstore = "docstore"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`

	// STORE_BACKEND selects where theme preferences live.
	StoreBackend string `env:"STORE_BACKEND" env-default:"docstore"`

	DocstoreEndpoint            string `env:"DOCSTORE_ENDPOINT" env-default:"https://cloud.appwrite.io/v1"`
	DocstoreProjectID           string `env:"DOCSTORE_PROJECT_ID"`
	DocstoreAPIKey              string `env:"DOCSTORE_API_KEY"`
	DocstoreDatabaseID          string `env:"DOCSTORE_DATABASE_ID"`
	DocstoreThemeCollection     string `env:"DOCSTORE_THEME_COLLECTION_ID"`
	DocstoreSentimentCollection string `env:"DOCSTORE_SENTIMENT_COLLECTION_ID"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"require"`

	// Empty disables the weather cache and the sentiment stream.
	RedisURL string `env:"REDIS_URL"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION" env-default:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Prefix          string `env:"S3_PREFIX" env-default:"theme"`

	WeatherURL      string        `env:"WEATHER_URL" env-default:"https://api.open-meteo.com/v1/forecast"`
	WeatherCacheTTL time.Duration `env:"WEATHER_CACHE_TTL" env-default:"10m"`

	SentimentURL   string `env:"SENTIMENT_URL" env-default:"https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"`
	SentimentToken string `env:"SENTIMENT_TOKEN"`

	GeoIPURL         string        `env:"GEOIP_URL" env-default:"http://ip-api.com/json"`
	LocationTimeout  time.Duration `env:"LOCATION_TIMEOUT" env-default:"15s"`
	LocationMaxAge   time.Duration `env:"LOCATION_MAX_AGE" env-default:"10s"`
	DevicePlatform   string        `env:"DEVICE_PLATFORM" env-default:"android"`
	DeviceIDFile     string        `env:"DEVICE_ID_FILE" env-default:".openway/device-id"`
	SentimentWorkers int           `env:"SENTIMENT_WORKERS" env-default:"2"`

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool `env:"-"`
}

// LoadConfig reads .env (when present) and then the environment, and
// validates the result.
func LoadConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration without validating the store backend. Commands
// that never touch the store use it directly.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.EnvFileLoaded = loaded
	return &cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))

	switch c.StoreBackend {
	case BackendDocstore:
		if c.DocstoreEndpoint == "" || c.DocstoreProjectID == "" {
			return fmt.Errorf("docstore backend requires DOCSTORE_ENDPOINT and DOCSTORE_PROJECT_ID")
		}
		if c.DocstoreDatabaseID == "" || c.DocstoreThemeCollection == "" {
			return fmt.Errorf("docstore backend requires DOCSTORE_DATABASE_ID and DOCSTORE_THEME_COLLECTION_ID")
		}
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("postgres backend requires DB_HOST and DB_NAME")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis backend requires REDIS_URL")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 backend requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.LocationTimeout <= 0 {
		c.LocationTimeout = 15 * time.Second
	}
	if c.LocationMaxAge < 0 {
		c.LocationMaxAge = 0
	}
	if c.SentimentWorkers <= 0 {
		c.SentimentWorkers = 2
	}
	return nil
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// HasPostgres reports whether Postgres connection settings are present.
func (c *Config) HasPostgres() bool {
	return c.DBHost != "" && c.DBName != ""
}
