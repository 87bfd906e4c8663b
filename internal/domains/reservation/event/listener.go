package event

import (
	"context"
	"fmt"
	"os"

	"lodging/config"
	"lodging/infras/kafka"
	"lodging/infras/otel"
	"lodging/internal/domains/reservation/model"
	"lodging/shared"
	"lodging/shared/cache"
	"lodging/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Listener keeps a process-local cache coherent with mutations made by other
// instances. Every instance consumes the topic in its own group.
type Listener struct {
	cfg   *config.Config
	kafka kafka.Client
	cache cache.Cache
	otel  otel.Otel
}

func NewListener(cfg *config.Config, kafka kafka.Client, cache cache.Cache, otel otel.Otel) *Listener {
	return &Listener{
		cfg:   cfg,
		kafka: kafka,
		cache: cache,
		otel:  otel,
	}
}

// Start blocks until ctx is done.
func (l *Listener) Start(ctx context.Context) {
	group := l.consumerGroup()

	log.Info().Str("topic", l.cfg.Kafka.Topic).Str("group", group).Msg("starting reservation event listener")

	l.kafka.Consume(ctx, group, l.cfg.Kafka.Topic, func(ctx context.Context, msg kafkaGo.Message) {
		if err := l.Handle(ctx, msg); err != nil {
			log.Error().Err(err).Str("key", string(msg.Key)).Msg("failed to handle reservation event")
		}
	})
}

func (l *Listener) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := kafka.Decode[model.Event](msg)
	if err != nil {
		return fmt.Errorf("failed to decode reservation event: %w", err)
	}

	switch event.Type {
	case model.EventCreated, model.EventUpdated, model.EventDeleted:
	default:
		log.Warn().Str("type", event.Type).Msg("ignoring unknown reservation event")

		return nil
	}

	if event.Type != model.EventCreated {
		if _, err := l.cache.Delete(ctx, shared.BuildCacheKey(constant.CacheKeyReservationGet, event.ReservationID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}
	}

	shared.InvalidateCaches(ctx, l.cache, constant.CacheKeyReservationRange)
	shared.InvalidateCaches(ctx, l.cache, constant.CacheKeyRevenueMonthly)

	log.Debug().Str("type", event.Type).Str("id", event.ReservationID).Msg("invalidated caches for reservation event")

	return nil
}

func (l *Listener) consumerGroup() string {
	host, err := os.Hostname()
	if err != nil {
		host = "local"
	}

	return fmt.Sprintf("%s-%s", l.cfg.Kafka.ConsumerGroup, host)
}
