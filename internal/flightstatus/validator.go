package flightstatus

import (
	"regexp"
	"time"
)

var (
	flightNumberPattern = regexp.MustCompile(`^[0-9]{1,4}$`)
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseQuery validates the raw query parameters and constructs a Query.
// Rules:
//   - carrier code: 2 or 3 characters
//   - flight number: 1 to 4 digits
//   - date: YYYY-MM-DD and a real calendar date
//
// Any violation returns ErrInvalidQuery. No normalization is applied: the
// fields pass through exactly as given (see Query.CacheKey).
func ParseQuery(carrierCode, flightNumber, date string) (Query, error) {
	if len(carrierCode) < 2 || len(carrierCode) > 3 {
		return Query{}, ErrInvalidQuery
	}
	if !flightNumberPattern.MatchString(flightNumber) {
		return Query{}, ErrInvalidQuery
	}
	if !isValidDate(date) {
		return Query{}, ErrInvalidQuery
	}

	return Query{
		CarrierCode:            carrierCode,
		FlightNumber:           flightNumber,
		ScheduledDepartureDate: date,
	}, nil
}

// isValidDate checks that the string is YYYY-MM-DD and names a date that
// actually exists (2024-02-30 is rejected, not rolled over)
func isValidDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
