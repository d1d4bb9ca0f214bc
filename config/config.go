// Package config loads settings from the environment, after merging a
// local .env file when one exists. Variable names follow the nesting of
// Config, e.g. DB_POSTGRES_WRITE_HOST or KAFKA_TOPICS_BOOKING_EVENTS.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envFile = ".env"

// PostgresEndpoint is one side of the read/write database split.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name                  string `envconfig:"NAME"                    default:"hotel"`
		Timezone              string `envconfig:"TIMEZONE"`
		RequestTimeoutSeconds int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"30"`
		APIKey                string `envconfig:"API_KEY"`
		Docs                  bool   `envconfig:"DOCS"`
		CORS                  struct {
			Enable           bool     `envconfig:"ENABLE"`
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		TTL   int `envconfig:"TTL" default:"300"`
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			Region          string `envconfig:"REGION"            default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"hotel-worker"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingEvents string `envconfig:"BOOKING_EVENTS" default:"hotel.booking.events"`
			RoomEvents    string `envconfig:"ROOM_EVENTS"    default:"hotel.room.events"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Mail struct {
		Host      string `envconfig:"HOST"`
		Port      int    `envconfig:"PORT"       default:"587"`
		Username  string `envconfig:"USERNAME"`
		Password  string `envconfig:"PASSWORD"`
		EnableSSL bool   `envconfig:"ENABLE_SSL" default:"true"`
		FromEmail string `envconfig:"FROM_EMAIL"`
		FromName  string `envconfig:"FROM_NAME"  default:"Rolax Hotel"`
	} `envconfig:"MAIL"`

	Booking struct {
		PublicPageSize           int `envconfig:"PUBLIC_PAGE_SIZE"           default:"9"`
		ReconcileIntervalMinutes int `envconfig:"RECONCILE_INTERVAL_MINUTES" default:"60"`
	} `envconfig:"BOOKING"`
}

// DatabaseName applies the optional per environment prefix.
func (c *Config) DatabaseName(base string) string {
	return c.DB.Postgres.Prefix + base
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads the configuration once. Later calls return the first result.
func Init() error {
	once.Do(func() {
		loadErr = load(&conf)
	})

	return loadErr
}

func load(cfg *Config) error {
	switch err := godotenv.Load(envFile); {
	case err == nil:
		log.Info().Str("file", envFile).Msg("Loaded environment file")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("file", envFile).Msg("No environment file, using process environment")
	default:
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("processing environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}

var (
	ErrMissingJWTSecret   = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	ErrSharedJWTSecret    = errors.New("JWT access and refresh secrets must differ")
	ErrMissingDatabase    = errors.New("DB_POSTGRES_WRITE_HOST is required")
	ErrInvalidRateLimiter = errors.New("APP_RATE_LIMITER_MAX_REQUESTS and APP_RATE_LIMITER_WINDOW_SECONDS must be positive")
)

// Validate reports settings the API cannot run without. Mail, kafka and
// object storage are optional and only disable their features.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "":
		errs = append(errs, ErrMissingJWTSecret)
	case c.JWT.AccessSecret == c.JWT.RefreshSecret:
		errs = append(errs, ErrSharedJWTSecret)
	}

	if c.DB.Postgres.Write.Host == "" {
		errs = append(errs, ErrMissingDatabase)
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		errs = append(errs, ErrInvalidRateLimiter)
	}

	return errors.Join(errs...)
}
