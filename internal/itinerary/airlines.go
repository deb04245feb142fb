package itinerary

// airlineNames maps common carrier codes to display names. Unknown codes
// fall back to the code itself.
var airlineNames = map[string]string{
	"DL": "Delta Air Lines",
	"AA": "American Airlines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"B6": "JetBlue Airways",
	"AS": "Alaska Airlines",
	"LH": "Lufthansa",
	"BA": "British Airways",
	"AF": "Air France",
	"KL": "KLM Royal Dutch Airlines",
}

// AirlineName returns the display name for a carrier code
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code
}
