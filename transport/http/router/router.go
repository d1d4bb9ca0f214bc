package router

import (
	"hotel/config"
	"hotel/docs"
	"hotel/internal/handlers/audit"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/blog"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/contact"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/hotelservice"
	"hotel/internal/handlers/image"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/roomtype"
	"hotel/internal/handlers/servicetype"
	"hotel/internal/handlers/user"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerDocURL = "/swagger/doc.json"

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Room         room.Handler
	RoomType     roomtype.Handler
	ServiceType  servicetype.Handler
	HotelService hotelservice.Handler
	Booking      booking.Handler
	Contact      contact.Handler
	Blog         blog.Handler
	Dashboard    dashboard.Handler
	Audit        audit.Handler
	Image        image.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(
			chiMiddleware.RequestID,
			chiMiddleware.RealIP,
			chiMiddleware.Recoverer,
			r.App.Tracing,
			r.App.CORS(),
			r.App.RateLimit(),
			r.App.Timeout(),
			r.AuthRole.APIKey,
			r.AuthRole.Auth,
			r.AuthRole.RBAC,
		)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.ServiceType.Router(routerGroup)
		r.DomainHandlers.HotelService.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Blog.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Audit.Router(routerGroup)
		r.DomainHandlers.Image.Router(routerGroup)
	})

	// The API browser sits outside /v1 so it needs no token.
	if r.Config.App.Docs {
		docs.SwaggerInfo.Title = r.Config.App.Name + " API"

		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerDocURL)))
	}
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}
