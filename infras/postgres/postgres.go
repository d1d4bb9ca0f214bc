// Package postgres opens the read and write pools. Reads go to a replica
// when one is configured; writes and every transaction use the primary.
package postgres

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" //nolint:revive
	"github.com/rs/zerolog/log"
)

const (
	driverName      = "postgres"
	maxIdleConns    = 10
	maxOpenConns    = 20
	connMaxLifetime = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New exits the process when the primary cannot be reached. Without a
// read host the read pool shares the primary.
func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: max(pg.MaxRetry, 1), wait: time.Duration(pg.RetryWaitTime) * time.Second}

	write := connect("write", DSN(pg.Write, cfg.DatabaseName(pg.Write.Name), nil), retry)
	if write == nil {
		log.Fatal().Int("attempts", retry.attempts).Msg("Could not connect to the primary database")
	}

	conn := &Connection{Read: write, Write: write}

	if pg.Read.Host == "" {
		return conn
	}

	if read := connect("read", DSN(pg.Read, cfg.DatabaseName(pg.Read.Name), nil), retry); read != nil {
		conn.Read = read
	} else {
		log.Warn().Msg("Read replica unreachable, reading from the primary")
	}

	return conn
}

// Close releases both pools.
func (c *Connection) Close() error {
	errs := []error{closePool("write", c.Write)}

	if c.Read != c.Write {
		errs = append(errs, closePool("read", c.Read))
	}

	return errors.Join(errs...)
}

func closePool(name string, db *sqlx.DB) error {
	if db == nil {
		return nil
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close %s pool: %w", name, err)
	}

	return nil
}

// DSN builds a postgres URL for endpoint. Extra query values are appended,
// which is how the migrator passes its own options.
func DSN(endpoint config.PostgresEndpoint, dbName string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

func connect(name, dsn string, retry retryPolicy) *sqlx.DB {
	for attempt := 1; attempt <= retry.attempts; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConns)
			db.SetMaxOpenConns(maxOpenConns)
			db.SetConnMaxLifetime(connMaxLifetime)

			log.Info().Str("pool", name).Msg("Connected to database")

			return db
		}

		log.Error().Err(err).Str("pool", name).Int("attempt", attempt).Msg("Failed connecting to database")

		if attempt < retry.attempts {
			time.Sleep(retry.wait)
		}
	}

	return nil
}
