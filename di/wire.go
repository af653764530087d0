//go:build wireinject
// +build wireinject

package di

import (
	"manta/config"
	"manta/infras/jwt"
	"manta/infras/kafka"
	"manta/infras/otel"
	"manta/infras/postgres"
	"manta/infras/redis"
	"manta/infras/s3"
	"manta/infras/stripe"
	"manta/permissions"
	"manta/shared/cache"
	"manta/transport/http"
	"manta/transport/http/middleware"
	"manta/transport/http/router"

	bookingRepository "manta/internal/domains/booking/repository"
	bookingService "manta/internal/domains/booking/service"
	courseRepository "manta/internal/domains/course/repository"
	courseService "manta/internal/domains/course/service"
	enrollmentRepository "manta/internal/domains/enrollment/repository"
	enrollmentService "manta/internal/domains/enrollment/service"
	galleryRepository "manta/internal/domains/gallery/repository"
	galleryService "manta/internal/domains/gallery/service"
	rentalRepository "manta/internal/domains/rental/repository"
	rentalService "manta/internal/domains/rental/service"
	tripRepository "manta/internal/domains/trip/repository"
	tripService "manta/internal/domains/trip/service"

	bookingHandler "manta/internal/handlers/booking"
	courseHandler "manta/internal/handlers/course"
	enrollmentHandler "manta/internal/handlers/enrollment"
	galleryHandler "manta/internal/handlers/gallery"
	paymentHandler "manta/internal/handlers/payment"
	rentalHandler "manta/internal/handlers/rental"
	tripHandler "manta/internal/handlers/trip"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var courseDomain = wire.NewSet(
	courseRepository.New,
	courseService.New,
)

var tripDomain = wire.NewSet(
	tripRepository.New,
	tripService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var rentalDomain = wire.NewSet(
	rentalRepository.New,
	rentalService.New,
)

var enrollmentDomain = wire.NewSet(
	enrollmentRepository.New,
	enrollmentService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	courseDomain,
	tripDomain,
	bookingDomain,
	rentalDomain,
	enrollmentDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	courseHandler.New,
	tripHandler.New,
	bookingHandler.New,
	rentalHandler.New,
	enrollmentHandler.New,
	galleryHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
