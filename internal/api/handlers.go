package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flightshare/flight-share/internal/flightstatus"
	"github.com/flightshare/flight-share/internal/itinerary"
	"github.com/flightshare/flight-share/pkg/logger"
)

// User-facing error messages for the stable API contract
const (
	msgInvalidQuery   = "Invalid query parameters provided."
	msgNotFound       = "Flight not found for the given details."
	msgConfigMissing  = "Internal server error: API configuration missing."
	msgBadBody        = "Invalid request body."
	msgAirportUnknown = "Airport not found."
)

// Handler contains the HTTP handlers
type Handler struct {
	statusService *flightstatus.Service
	assembler     *itinerary.Assembler
	airports      itinerary.AirportNames
	logger        *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(statusService *flightstatus.Service, assembler *itinerary.Assembler, airports itinerary.AirportNames, log *logger.Logger) *Handler {
	return &Handler{
		statusService: statusService,
		assembler:     assembler,
		airports:      airports,
		logger:        log.Named("api-handler"),
	}
}

// errorResponse is the structured body every failure returns
type errorResponse struct {
	Error string `json:"error"`
}

// GetFlightStatus handles GET /api/v1/flight-status
func (h *Handler) GetFlightStatus(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query, err := flightstatus.ParseQuery(
		params.Get("carrierCode"),
		params.Get("flightNumber"),
		params.Get("scheduledDepartureDate"),
	)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, msgInvalidQuery)
		return
	}

	statuses, err := h.statusService.Lookup(r.Context(), query)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, statuses)
}

// itineraryRequest is the POST /api/v1/itinerary body
type itineraryRequest struct {
	Name    string `json:"name"`
	Flights []struct {
		CarrierCode            string `json:"carrierCode"`
		FlightNumber           string `json:"flightNumber"`
		ScheduledDepartureDate string `json:"scheduledDepartureDate"`
	} `json:"flights"`
}

// CreateItinerary handles POST /api/v1/itinerary: validates every flight,
// fans the lookups out, and assembles the shareable itinerary
func (h *Handler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if len(req.Flights) == 0 {
		h.writeError(w, http.StatusBadRequest, msgInvalidQuery)
		return
	}

	queries := make([]flightstatus.Query, 0, len(req.Flights))
	for _, flight := range req.Flights {
		query, err := flightstatus.ParseQuery(flight.CarrierCode, flight.FlightNumber, flight.ScheduledDepartureDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, msgInvalidQuery)
			return
		}
		queries = append(queries, query)
	}

	results := h.statusService.LookupAll(r.Context(), queries)

	enriched := make([]itinerary.EnrichedFlight, 0, len(results))
	for _, result := range results {
		flight := itinerary.EnrichedFlight{
			ID:           uuid.NewString(),
			CarrierCode:  result.Query.CarrierCode,
			FlightNumber: result.Query.FlightNumber,
			Date:         result.Query.ScheduledDepartureDate,
		}
		switch {
		case result.Err != nil:
			flight.Error = lookupErrorMessage(result.Err)
		case len(result.Flights) > 0:
			// One lookup can match several legs of a designator; the first
			// record is the one the display uses
			flight.Status = result.Flights[0]
		}
		enriched = append(enriched, flight)
	}

	built, err := h.assembler.BuildItinerary(req.Name, enriched)
	if err != nil {
		var aggErr *itinerary.AggregateError
		if errors.As(err, &aggErr) {
			h.writeError(w, http.StatusBadGateway, aggErr.Error())
			return
		}
		h.logger.Error("Failed to assemble itinerary", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to assemble itinerary.")
		return
	}

	h.writeJSON(w, http.StatusOK, built)
}

// GetAirport handles GET /api/v1/airports/{code}
func (h *Handler) GetAirport(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	name := h.airports.GetName(code)
	if name == "" {
		h.writeError(w, http.StatusNotFound, msgAirportUnknown)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"iataCode": code,
		"name":     name,
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeLookupError maps a lookup pipeline error onto the API contract
func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, flightstatus.ErrConfigMissing):
		h.writeError(w, http.StatusInternalServerError, msgConfigMissing)
	case errors.Is(err, flightstatus.ErrFlightNotFound):
		h.writeError(w, http.StatusNotFound, msgNotFound)
	default:
		var provErr *flightstatus.ProviderError
		if errors.As(err, &provErr) {
			h.writeError(w, provErr.Status, provErr.Message)
			return
		}
		h.logger.Error("Unclassified lookup failure", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch flight status.")
	}
}

// lookupErrorMessage renders a lookup error as the per-flight error string
// carried by an enriched flight
func lookupErrorMessage(err error) string {
	switch {
	case errors.Is(err, flightstatus.ErrConfigMissing):
		return msgConfigMissing
	case errors.Is(err, flightstatus.ErrFlightNotFound):
		return msgNotFound
	default:
		return err.Error()
	}
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

// writeError writes a structured error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}
