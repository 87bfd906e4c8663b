//go:build wireinject
// +build wireinject

package di

import (
	"lodging/config"
	"lodging/infras/kafka"
	"lodging/infras/otel"
	"lodging/infras/postgres"
	"lodging/infras/s3"
	"lodging/permissions"
	"lodging/shared/cache"
	"lodging/transport/http"
	"lodging/transport/http/middleware"
	"lodging/transport/http/router"

	lodgingRepository "lodging/internal/domains/lodging/repository"
	lodgingService "lodging/internal/domains/lodging/service"
	reservationEvent "lodging/internal/domains/reservation/event"
	reservationRepository "lodging/internal/domains/reservation/repository"
	reservationService "lodging/internal/domains/reservation/service"
	revenueService "lodging/internal/domains/revenue/service"
	roomRepository "lodging/internal/domains/room/repository"
	roomService "lodging/internal/domains/room/service"

	lodgingHandler "lodging/internal/handlers/lodging"
	reservationHandler "lodging/internal/handlers/reservation"
	revenueHandler "lodging/internal/handlers/revenue"
	roomHandler "lodging/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var lodgingDomain = wire.NewSet(
	lodgingRepository.New,
	lodgingService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	reservationEvent.NewListener,
)

var revenueDomain = wire.NewSet(
	revenueService.New,
)

var domains = wire.NewSet(
	lodgingDomain,
	roomDomain,
	reservationDomain,
	revenueDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	lodgingHandler.New,
	roomHandler.New,
	reservationHandler.New,
	revenueHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
