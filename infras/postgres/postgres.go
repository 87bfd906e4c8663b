package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"lodging/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
	pingTimeout        = 5 * time.Second
)

// Connection splits reads from writes. Reads may be served by a replica, so
// the reservation availability check runs on Write inside a transaction.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	role     string
	host     string
	port     string
	username string
	password string
	name     string
	sslMode  string
	timezone string
}

// DSN renders the lib/pq URL. The session timezone defaults to UTC so
// timestamptz columns scan back as UTC instants.
func (e endpoint) DSN() string {
	query := url.Values{}
	query.Set("sslmode", e.sslMode)

	tz := e.timezone
	if tz == "" {
		tz = "UTC"
	}

	query.Set("timezone", tz)

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     "/" + e.name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	read := endpoint{
		role: "read", host: pg.Read.Host, port: pg.Read.Port, username: pg.Read.Username, password: pg.Read.Password,
		name: pg.Prefix + pg.Read.Name, sslMode: pg.Read.SSLMode, timezone: pg.Read.Timezone,
	}
	write := endpoint{
		role: "write", host: pg.Write.Host, port: pg.Write.Port, username: pg.Write.Username, password: pg.Write.Password,
		name: pg.Prefix + pg.Write.Name, sslMode: pg.Write.SSLMode, timezone: pg.Write.Timezone,
	}

	return &Connection{
		Read:  mustConnect(read, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
		Write: mustConnect(write, pg.MaxRetry, time.Duration(pg.RetryWaitTime)*time.Second),
	}
}

// Close releases both pools.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func mustConnect(e endpoint, maxRetry int, wait time.Duration) *sqlx.DB {
	db, err := connect(e, max(1, maxRetry), wait)
	if err != nil {
		log.Fatal().Err(err).Str("role", e.role).Str("host", e.host).Msg("Failed connecting to database")
	}

	return db
}

func connect(e endpoint, attempts int, wait time.Duration) (*sqlx.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := open(e)
		if err == nil {
			log.Info().Str("role", e.role).Str("host", e.host).Str("port", e.port).Str("dbName", e.name).Msg("Connected to database")

			return db, nil
		}

		lastErr = err

		log.Error().Err(err).Str("role", e.role).Str("host", e.host).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	return nil, fmt.Errorf("connecting to %s database after %d attempts: %w", e.role, attempts, lastErr)
}

func open(e endpoint) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, e.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxIdleConns(maxIdleConnections)
	db.SetMaxOpenConns(maxOpenConnections)
	db.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}
