package itinerary

import (
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flightshare/flight-share/internal/flightstatus"
	"github.com/flightshare/flight-share/pkg/logger"
)

// AirportNames resolves an IATA code to an airport name. Unknown codes
// resolve to the empty string. Display-only collaborator.
type AirportNames interface {
	GetName(iataCode string) string
}

// Assembler derives grouped, sorted display data from enriched flights
type Assembler struct {
	airports AirportNames
	logger   *logger.Logger
}

// NewAssembler creates a new itinerary assembler
func NewAssembler(airports AirportNames, log *logger.Logger) *Assembler {
	return &Assembler{
		airports: airports,
		logger:   log.Named("itinerary"),
	}
}

// BuildItinerary assembles the full shareable itinerary. Any per-flight
// lookup error blocks assembly and surfaces as one AggregateError.
func (a *Assembler) BuildItinerary(name string, flights []EnrichedFlight) (*Itinerary, error) {
	var failures []LookupFailure
	for _, flight := range flights {
		if flight.Error != "" {
			failures = append(failures, LookupFailure{
				Flight:  flight.Designator(),
				Message: flight.Error,
			})
		}
	}
	if len(failures) > 0 {
		a.logger.Warn("Itinerary blocked by failed lookups",
			logger.Int("failed_count", len(failures)),
			logger.Int("flight_count", len(flights)),
		)
		return nil, &AggregateError{Failures: failures}
	}

	groups := a.Assemble(flights)

	count := 0
	for _, group := range groups {
		count += len(group.Flights)
	}

	return &Itinerary{
		Name:        name,
		Reference:   deriveReference(name),
		FlightCount: count,
		Groups:      groups,
	}, nil
}

// Assemble groups the flights by departure calendar date and derives the
// per-flight display fields. Flights with neither a requested date nor a
// resolved status cannot be displayed and are dropped.
func (a *Assembler) Assemble(flights []EnrichedFlight) []FlightGroup {
	type sortableFlight struct {
		display   DisplayFlight
		departure time.Time
	}
	buckets := make(map[string][]sortableFlight)

	for _, flight := range flights {
		if flight.Date == "" && flight.Status == nil {
			a.logger.Debug("Dropping undisplayable flight",
				logger.String("flight", flight.Designator()))
			continue
		}

		display, departure := a.displayFields(flight)

		// Flights group by the calendar date they actually depart, not the
		// date the user asked for; a resolved status wins over the request.
		date := flight.Date
		if !departure.IsZero() {
			date = departure.Format("2006-01-02")
		}

		buckets[date] = append(buckets[date], sortableFlight{display: display, departure: departure})
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make([]FlightGroup, 0, len(dates))
	for _, date := range dates {
		bucket := buckets[date]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].departure.Before(bucket[j].departure)
		})

		group := FlightGroup{Date: date, Flights: make([]DisplayFlight, 0, len(bucket))}
		for _, f := range bucket {
			group.Flights = append(group.Flights, f.display)
		}
		groups = append(groups, group)
	}

	return groups
}

// displayFields derives the display fields for one flight and returns the
// parsed departure time for grouping and sorting (zero when unavailable)
func (a *Assembler) displayFields(flight EnrichedFlight) (DisplayFlight, time.Time) {
	display := DisplayFlight{
		ID:           flight.ID,
		CarrierCode:  flight.CarrierCode,
		FlightNumber: flight.FlightNumber,
		AirlineName:  AirlineName(flight.CarrierCode),
		Duration:     "N/A",
	}

	status := flight.Status
	if status == nil {
		return display, time.Time{}
	}

	display.Origin, display.Destination = extractEndpoints(status)
	display.OriginName = a.airportName(display.Origin)
	display.DestinationName = a.airportName(display.Destination)
	display.DepartureTime = status.Departure
	display.DepartureTerminal = status.DepartureTerminal
	display.DepartureGate = status.DepartureGate
	display.ArrivalTime = status.Arrival
	display.ArrivalTerminal = status.ArrivalTerminal
	display.ArrivalGate = status.ArrivalGate
	display.Aircraft = status.Aircraft
	display.Duration = FormatDuration(status.Duration)

	departure, depOK := parseTimestamp(status.Departure)
	arrival, arrOK := parseTimestamp(status.Arrival)
	if depOK && arrOK {
		display.IsOvernight = arrival.Format("2006-01-02") != departure.Format("2006-01-02")
	}

	if !depOK {
		return display, time.Time{}
	}
	return display, departure
}

// extractEndpoints returns the origin and destination IATA codes with the
// fixed fallback order legs, then segments, then points. It tolerates a
// status whose sub-shapes were partially dropped upstream.
func extractEndpoints(status *flightstatus.FlightStatus) (origin, destination string) {
	if len(status.Legs) > 0 {
		return status.Legs[0].BoardPointIataCode, status.Legs[0].OffPointIataCode
	}
	if len(status.Segments) > 0 {
		return status.Segments[0].BoardPointIataCode, status.Segments[0].OffPointIataCode
	}
	if points := status.FlightPoints; len(points) > 0 {
		origin = points[0].IataCode
		destination = points[len(points)-1].IataCode
	}
	return origin, destination
}

// airportName resolves an IATA code for display, tolerating a nil collaborator
func (a *Assembler) airportName(iataCode string) string {
	if a.airports == nil || iataCode == "" {
		return ""
	}
	return a.airports.GetName(iataCode)
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// FormatDuration renders an ISO-8601 PnHnM duration as "2h 30m", omitting
// the hour part when zero and the minute part when zero. Absent or
// unparseable durations render "N/A".
func FormatDuration(iso string) string {
	match := durationPattern.FindStringSubmatch(iso)
	if match == nil || (match[1] == "" && match[2] == "") {
		return "N/A"
	}

	hours, minutes := 0, 0
	if match[1] != "" {
		hours, _ = strconv.Atoi(match[1])
	}
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}

	var parts []string
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.Itoa(minutes)+"m")
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

// timestampLayouts are the provider timestamp forms seen in practice: local
// times with an offset, without one, and minute precision
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseTimestamp parses a provider timestamp string
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// deriveReference builds the cosmetic booking reference: the itinerary name
// with whitespace stripped, uppercased, truncated to 6 characters; or 6
// random alphanumerics when no name was given. No uniqueness guarantee.
func deriveReference(name string) string {
	stripped := strings.ToUpper(strings.Join(strings.Fields(name), ""))
	if stripped != "" {
		if len(stripped) > 6 {
			stripped = stripped[:6]
		}
		return stripped
	}

	ref := make([]byte, 6)
	for i := range ref {
		ref[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return string(ref)
}
