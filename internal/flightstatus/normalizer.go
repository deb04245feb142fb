package flightstatus

// normalize reduces one raw provider record into the canonical flight status.
// This is the only place a FlightStatus is constructed.
//
// Departure and arrival timestamps, terminals and gates come from the
// "points" shape: the first point's departure side and the second point's
// arrival side, by position. Aircraft comes from the first leg. Duration is
// the first leg's scheduled duration, else the first segment's. Every field
// beyond the designator is optional: absent sub-shapes never fail
// normalization, they just leave fields empty.
func normalize(raw DatedFlight) *FlightStatus {
	status := &FlightStatus{
		Type:                   raw.Type,
		ScheduledDepartureDate: raw.ScheduledDepartureDate,
		FlightDesignator:       raw.FlightDesignator,
		Legs:                   raw.Legs,
		Segments:               raw.Segments,
		FlightPoints:           raw.FlightPoints,
	}

	if len(raw.FlightPoints) > 0 {
		if dep := raw.FlightPoints[0].Departure; dep != nil {
			if len(dep.Timings) > 0 {
				status.Departure = dep.Timings[0].Value
			}
			if dep.Terminal != nil {
				status.DepartureTerminal = dep.Terminal.Code
			}
			if dep.Gate != nil {
				status.DepartureGate = dep.Gate.MainGate
			}
		}
	}
	if len(raw.FlightPoints) > 1 {
		if arr := raw.FlightPoints[1].Arrival; arr != nil {
			if len(arr.Timings) > 0 {
				status.Arrival = arr.Timings[0].Value
			}
			if arr.Terminal != nil {
				status.ArrivalTerminal = arr.Terminal.Code
			}
			if arr.Gate != nil {
				status.ArrivalGate = arr.Gate.MainGate
			}
		}
	}

	if len(raw.Legs) > 0 {
		if raw.Legs[0].AircraftEquipment != nil {
			status.Aircraft = raw.Legs[0].AircraftEquipment.AircraftType
		}
		status.Duration = raw.Legs[0].ScheduledLegDuration
	}
	if status.Duration == "" && len(raw.Segments) > 0 {
		status.Duration = raw.Segments[0].ScheduledSegmentDuration
	}

	return status
}

// normalizeAll normalizes every raw flight in provider order
func normalizeAll(raw []DatedFlight) []*FlightStatus {
	statuses := make([]*FlightStatus, 0, len(raw))
	for _, flight := range raw {
		statuses = append(statuses, normalize(flight))
	}
	return statuses
}
