package flightstatus

// Query identifies one flight lookup: carrier, number, departure date.
// It is constructed by ParseQuery and never mutated afterwards.
type Query struct {
	CarrierCode            string
	FlightNumber           string
	ScheduledDepartureDate string // YYYY-MM-DD
}

// CacheKey returns the cache key for this query. The key is built from the
// exact query text: no case folding and no zero-padding, so "100" and "0100"
// produce distinct keys even though they name the same flight.
func (q Query) CacheKey() string {
	return q.CarrierCode + "-" + q.FlightNumber + "-" + q.ScheduledDepartureDate
}

// String returns the query in compact display form, e.g. "DL100 on 2024-06-01"
func (q Query) String() string {
	return q.CarrierCode + q.FlightNumber + " on " + q.ScheduledDepartureDate
}

// FlightDesignator is the carrier code / flight number pair
type FlightDesignator struct {
	CarrierCode  string `json:"carrierCode"`
	FlightNumber string `json:"flightNumber"`
}

// Timing is a qualified timestamp on a flight point
type Timing struct {
	Qualifier string `json:"qualifier"`
	Value     string `json:"value"`
}

// Terminal is an airport terminal reference
type Terminal struct {
	Code string `json:"code"`
}

// Gate is an airport gate reference
type Gate struct {
	MainGate string `json:"mainGate"`
}

// PointEvent is the departure or arrival side of a flight point
type PointEvent struct {
	Timings  []Timing  `json:"timings"`
	Terminal *Terminal `json:"terminal,omitempty"`
	Gate     *Gate     `json:"gate,omitempty"`
}

// FlightPoint is one end of a flight in the provider's "points" shape.
// The shape does not label which point is origin vs destination: the first
// point carries the departure, the second carries the arrival.
type FlightPoint struct {
	IataCode  string      `json:"iataCode"`
	Departure *PointEvent `json:"departure,omitempty"`
	Arrival   *PointEvent `json:"arrival,omitempty"`
}

// AircraftEquipment describes the aircraft operating a leg
type AircraftEquipment struct {
	AircraftType string `json:"aircraftType"`
}

// Leg is one entry of the provider's "legs" shape
type Leg struct {
	BoardPointIataCode   string             `json:"boardPointIataCode"`
	OffPointIataCode     string             `json:"offPointIataCode"`
	AircraftEquipment    *AircraftEquipment `json:"aircraftEquipment,omitempty"`
	ScheduledLegDuration string             `json:"scheduledLegDuration,omitempty"`
}

// OperatingFlight identifies the operating carrier of a codeshare segment
type OperatingFlight struct {
	CarrierCode  string `json:"carrierCode"`
	FlightNumber string `json:"flightNumber,omitempty"`
}

// Partnership describes a codeshare relationship on a segment
type Partnership struct {
	OperatingFlight OperatingFlight `json:"operatingFlight"`
}

// Segment is one entry of the provider's "segments" shape
type Segment struct {
	BoardPointIataCode       string       `json:"boardPointIataCode"`
	OffPointIataCode         string       `json:"offPointIataCode"`
	ScheduledSegmentDuration string       `json:"scheduledSegmentDuration,omitempty"`
	Partnership              *Partnership `json:"partnership,omitempty"`
}

// DatedFlight is the raw per-flight record returned by the schedule provider.
// The three sub-shapes (points, legs, segments) are alternative encodings of
// the same flight and any subset of them may be present.
type DatedFlight struct {
	Type                   string           `json:"type"`
	ScheduledDepartureDate string           `json:"scheduledDepartureDate"`
	FlightDesignator       FlightDesignator `json:"flightDesignator"`
	FlightPoints           []FlightPoint    `json:"flightPoints,omitempty"`
	Segments               []Segment        `json:"segments,omitempty"`
	Legs                   []Leg            `json:"legs,omitempty"`
}

// FlightStatus is the canonical normalized record for one flight. It is
// produced only by the normalizer, cached and handed to callers by reference,
// and never mutated after construction.
//
// The raw sub-shapes are retained so the display layer can re-run endpoint
// extraction with its own fallback order.
type FlightStatus struct {
	Type                   string           `json:"type"`
	ScheduledDepartureDate string           `json:"scheduledDepartureDate"`
	FlightDesignator       FlightDesignator `json:"flightDesignator"`
	Departure              string           `json:"departure"`
	DepartureTerminal      string           `json:"departureTerminal,omitempty"`
	DepartureGate          string           `json:"departureGate,omitempty"`
	Arrival                string           `json:"arrival"`
	ArrivalTerminal        string           `json:"arrivalTerminal,omitempty"`
	ArrivalGate            string           `json:"arrivalGate,omitempty"`
	Aircraft               string           `json:"aircraft,omitempty"`
	Duration               string           `json:"duration,omitempty"`
	Legs                   []Leg            `json:"legs,omitempty"`
	Segments               []Segment        `json:"segments,omitempty"`
	FlightPoints           []FlightPoint    `json:"flightPoints,omitempty"`
}
