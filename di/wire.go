//go:build wireinject
// +build wireinject

package di

import (
	"homestay/config"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/infras/redis"
	"homestay/internal/sweeper"
	"homestay/shared/cache"
	"homestay/shared/clock"
	"homestay/transport/http"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"

	bookingRepository "homestay/internal/domains/booking/repository"
	bookingService "homestay/internal/domains/booking/service"
	calendarRepository "homestay/internal/domains/calendar/repository"
	calendarService "homestay/internal/domains/calendar/service"
	propertyRepository "homestay/internal/domains/property/repository"
	userRepository "homestay/internal/domains/user/repository"
	bookingHandler "homestay/internal/handlers/booking"
	calendarHandler "homestay/internal/handlers/calendar"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var calendarDomain = wire.NewSet(
	calendarRepository.New,
	calendarService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	propertyRepository.New,
	userRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	calendarDomain,
	bookingDomain,
)

var workers = wire.NewSet(
	sweeper.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	calendarHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		workers,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
