package di

import (
	"context"
	"lodging/config"
	"lodging/infras/kafka"
	"lodging/infras/otel"
	"lodging/infras/postgres"
	"lodging/internal/domains/reservation/event"
	"lodging/transport/http"
	"time"

	"github.com/rs/zerolog/log"
)

// App is everything the entrypoints need from the object graph.
type App struct {
	Config   *config.Config
	HTTP     *http.HTTP
	Listener *event.Listener
	Kafka    kafka.Client
	DB       *postgres.Connection
	Otel     otel.Otel
}

const flushTimeout = 5 * time.Second

// StartListener consumes reservation events in the background. It only runs
// for the process-local memory cache and reports whether it started.
func (a *App) StartListener(ctx context.Context) bool {
	if !a.Config.Kafka.Enable || a.Config.Cache.Driver == config.CacheDriverRedis {
		return false
	}

	go a.Listener.Start(ctx)

	return true
}

// Close releases the infrastructure once the HTTP server has stopped.
func (a *App) Close() {
	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database connections")
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := a.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
