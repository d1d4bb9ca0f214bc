package config_test

import (
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
)

func validConfig() config.Config {
	var cfg config.Config

	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "localhost"

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *config.Config)
		wantErrs []error
	}{
		{
			name:   "valid",
			mutate: func(_ *config.Config) {},
		},
		{
			name:     "missing secrets",
			mutate:   func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" },
			wantErrs: []error{config.ErrMissingJWTSecret},
		},
		{
			name:     "shared secrets",
			mutate:   func(cfg *config.Config) { cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret },
			wantErrs: []error{config.ErrSharedJWTSecret},
		},
		{
			name: "several problems are joined",
			mutate: func(cfg *config.Config) {
				cfg.DB.Postgres.Write.Host = ""
				cfg.App.RateLimiter.Enable = true
			},
			wantErrs: []error{config.ErrMissingDatabase, config.ErrInvalidRateLimiter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)

				return
			}

			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestInit_Defaults(t *testing.T) {
	t.Setenv("DB_POSTGRES_WRITE_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	assert.NoError(t, config.Init())

	cfg := config.Get()

	assert.Equal(t, "db.internal", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "hotel.booking.events", cfg.Kafka.Topics.BookingEvents)
	assert.Equal(t, 9, cfg.Booking.PublicPageSize)
}

func TestConfig_DatabaseName(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "hotel", cfg.DatabaseName("hotel"))

	cfg.DB.Postgres.Prefix = "staging_"
	assert.Equal(t, "staging_hotel", cfg.DatabaseName("hotel"))
}
