//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	auditRepository "hotel/internal/domains/audit/repository"
	auditService "hotel/internal/domains/audit/service"
	authService "hotel/internal/domains/auth/service"
	blogRepository "hotel/internal/domains/blog/repository"
	blogService "hotel/internal/domains/blog/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	contactRepository "hotel/internal/domains/contact/repository"
	contactService "hotel/internal/domains/contact/service"
	dashboardService "hotel/internal/domains/dashboard/service"
	hotelServiceRepository "hotel/internal/domains/hotelservice/repository"
	hotelServiceService "hotel/internal/domains/hotelservice/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	roomTypeService "hotel/internal/domains/roomtype/service"
	serviceTypeRepository "hotel/internal/domains/servicetype/repository"
	serviceTypeService "hotel/internal/domains/servicetype/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	auditHandler "hotel/internal/handlers/audit"
	authHandler "hotel/internal/handlers/auth"
	blogHandler "hotel/internal/handlers/blog"
	bookingHandler "hotel/internal/handlers/booking"
	contactHandler "hotel/internal/handlers/contact"
	dashboardHandler "hotel/internal/handlers/dashboard"
	hotelServiceHandler "hotel/internal/handlers/hotelservice"
	imageHandler "hotel/internal/handlers/image"
	roomHandler "hotel/internal/handlers/room"
	roomTypeHandler "hotel/internal/handlers/roomtype"
	serviceTypeHandler "hotel/internal/handlers/servicetype"
	userHandler "hotel/internal/handlers/user"
	"hotel/internal/worker"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/event"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

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
	mail.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var repositories = wire.NewSet(
	userRepository.New,
	roomTypeRepository.New,
	roomRepository.New,
	serviceTypeRepository.New,
	hotelServiceRepository.New,
	bookingRepository.New,
	contactRepository.New,
	blogRepository.New,
	auditRepository.New,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	userService.New,
	roomTypeService.New,
	roomService.New,
	serviceTypeService.New,
	hotelServiceService.New,
	bookingService.New,
	contactService.New,
	blogService.New,
	dashboardService.New,
	auditService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	roomTypeHandler.New,
	serviceTypeHandler.New,
	hotelServiceHandler.New,
	bookingHandler.New,
	contactHandler.New,
	blogHandler.New,
	dashboardHandler.New,
	auditHandler.New,
	imageHandler.New,
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

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		s3.New,
		event.NewPublisher,
		roomRepository.New,
		roomTypeRepository.New,
		bookingRepository.New,
		auditRepository.New,
		roomService.New,
		auditService.New,
		worker.New,
	)

	return &worker.Worker{}
}
