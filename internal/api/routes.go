package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flightshare/flight-share/internal/config"
	"github.com/flightshare/flight-share/internal/flightstatus"
	"github.com/flightshare/flight-share/internal/itinerary"
	"github.com/flightshare/flight-share/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(statusService *flightstatus.Service, assembler *itinerary.Assembler, airports itinerary.AirportNames, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(statusService, assembler, airports, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Flight status lookup
		router.Get("/flight-status", r.handler.GetFlightStatus)

		// Itinerary assembly
		router.Post("/itinerary", r.handler.CreateItinerary)

		// Airport name lookup
		router.Get("/airports/{code}", r.handler.GetAirport)

		// Health check
		router.Get("/health", r.handler.GetHealth)
	})

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler())

	return router
}
