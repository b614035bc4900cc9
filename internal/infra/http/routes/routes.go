package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/callflex-webhooks/internal/infra/http/handlers"
	"github.com/xavierca1/callflex-webhooks/internal/infra/http/middleware"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Typeform *handlers.TypeformHandler
	Stripe   *handlers.StripeHandler
}

func NewRouter(h Handlers, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature", "Typeform-Signature"},
		MaxAge:         300,
	}))

	r.Get("/", h.Health.Home)
	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/typeform-webhook", h.Typeform.Handle)
	r.Post("/stripe-webhook", h.Stripe.Handle)

	return r
}
