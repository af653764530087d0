package router

import (
	"manta/internal/handlers/booking"
	"manta/internal/handlers/course"
	"manta/internal/handlers/enrollment"
	"manta/internal/handlers/gallery"
	"manta/internal/handlers/payment"
	"manta/internal/handlers/rental"
	"manta/internal/handlers/trip"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Course     course.Handler
	Trip       trip.Handler
	Booking    booking.Handler
	Rental     rental.Handler
	Enrollment enrollment.Handler
	Gallery    gallery.Handler
	Payment    payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Course.Router(routerGroup)
		r.DomainHandlers.Trip.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Rental.Router(routerGroup)
		r.DomainHandlers.Enrollment.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
