package itinerary

import (
	"fmt"
	"strings"

	"github.com/flightshare/flight-share/internal/flightstatus"
)

// EnrichedFlight is one requested flight joined with its lookup outcome.
// Status and Error are mutually exclusive; both may be absent while a lookup
// is still pending.
type EnrichedFlight struct {
	ID           string
	CarrierCode  string
	FlightNumber string
	Date         string // requested departure date, YYYY-MM-DD, may be empty
	Status       *flightstatus.FlightStatus
	Error        string
	IsLoading    bool
}

// Designator returns the compact flight designator, e.g. "DL100"
func (f EnrichedFlight) Designator() string {
	return f.CarrierCode + f.FlightNumber
}

// DisplayFlight is one flight with its derived display fields
type DisplayFlight struct {
	ID                string `json:"id"`
	CarrierCode       string `json:"carrierCode"`
	FlightNumber      string `json:"flightNumber"`
	AirlineName       string `json:"airlineName"`
	Origin            string `json:"origin,omitempty"`
	OriginName        string `json:"originName,omitempty"`
	Destination       string `json:"destination,omitempty"`
	DestinationName   string `json:"destinationName,omitempty"`
	DepartureTime     string `json:"departureTime,omitempty"`
	DepartureTerminal string `json:"departureTerminal,omitempty"`
	DepartureGate     string `json:"departureGate,omitempty"`
	ArrivalTime       string `json:"arrivalTime,omitempty"`
	ArrivalTerminal   string `json:"arrivalTerminal,omitempty"`
	ArrivalGate       string `json:"arrivalGate,omitempty"`
	Aircraft          string `json:"aircraft,omitempty"`
	Duration          string `json:"duration"`
	IsOvernight       bool   `json:"isOvernight"`
}

// FlightGroup is the set of flights departing on one calendar date
type FlightGroup struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Flights []DisplayFlight `json:"flights"`
}

// Itinerary is the assembled, shareable result
type Itinerary struct {
	Name        string        `json:"name,omitempty"`
	Reference   string        `json:"reference"`
	FlightCount int           `json:"flightCount"`
	Groups      []FlightGroup `json:"groups"`
}

// LookupFailure names one flight that could not be resolved
type LookupFailure struct {
	Flight  string
	Message string
}

// AggregateError is the single user-facing failure raised when any flight in
// an itinerary submission carried a lookup error
type AggregateError struct {
	Failures []LookupFailure
}

// Error implements the error interface
func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Flight, f.Message))
	}
	noun := "flight"
	if len(e.Failures) > 1 {
		noun = "flights"
	}
	return fmt.Sprintf("%d %s could not be resolved (%s)", len(e.Failures), noun, strings.Join(parts, "; "))
}
