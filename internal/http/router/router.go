package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"
	"fleetops/internal/http/middleware/ratelimit"
	"fleetops/internal/logx"
)

// Deps holds everything the router mounts.
type Deps struct {
	Logger        logx.Logger
	Handlers      *handlers.Handlers
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Vehicles      *handlers.VehicleHandler
	Orders        *handlers.OrderHandler
	Authenticator *middleware.Authenticator
	LoginLimiter  *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Handlers.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Handlers.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth", d.Auth.Register)
	r.With(d.LoginLimiter.Handler()).Post("/auth/token", d.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(d.Authenticator.Handler())

		r.Route("/users", func(r chi.Router) {
			r.Get("/", d.Users.List)
			r.Get("/me", d.Users.Me)
			r.Delete("/me", d.Users.DeleteMe)
			r.Put("/password", d.Users.ChangePassword)
			r.Get("/{id}", d.Users.GetByID)
			r.Put("/{id}/role", d.Users.ChangeRole)
			r.Delete("/{id}", d.Users.DeleteByID)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", d.Vehicles.List)
			r.Post("/", d.Vehicles.Create)
			r.Get("/{id}", d.Vehicles.GetByID)
			r.Put("/{id}/status", d.Vehicles.UpdateStatus)
			r.Put("/{id}/driver", d.Vehicles.ChangeDriver)
			r.Delete("/{id}", d.Vehicles.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", d.Orders.List)
			r.Post("/", d.Orders.Create)
			r.Get("/{id}", d.Orders.GetByID)
			r.Put("/{id}/status", d.Orders.UpdateStatus)
			r.Delete("/{id}", d.Orders.Delete)
		})
	})

	r.NotFound(http.HandlerFunc(d.Handlers.NotFound))

	return r
}
