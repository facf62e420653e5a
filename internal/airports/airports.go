package airports

import (
	"strings"
)

// Resolver maps a place name to a 3-letter IATA code.
type Resolver interface {
	Resolve(name string) (string, bool)
}

// StaticResolver answers from a fixed table of cities and airport names.
type StaticResolver struct {
	codes map[string]string
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{codes: knownPlaces}
}

// WithPlaces returns a resolver that also knows the given name → code pairs.
func (r *StaticResolver) WithPlaces(extra map[string]string) *StaticResolver {
	codes := make(map[string]string, len(r.codes)+len(extra))
	for k, v := range r.codes {
		codes[k] = v
	}
	for k, v := range extra {
		codes[normalizeName(k)] = strings.ToUpper(v)
	}
	return &StaticResolver{codes: codes}
}

func (r *StaticResolver) Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if isIATACode(name) {
		return strings.ToUpper(name), true
	}
	code, ok := r.codes[normalizeName(name)]
	return code, ok
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(name, ","); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	return strings.Join(strings.Fields(name), " ")
}

var knownPlaces = map[string]string{
	// North America
	"new york":      "JFK", // John F. Kennedy
	"newark":        "EWR", // Newark Liberty
	"los angeles":   "LAX", // Los Angeles International
	"san francisco": "SFO", // San Francisco International
	"chicago":       "ORD", // O'Hare
	"boston":        "BOS", // Logan
	"miami":         "MIA", // Miami International
	"seattle":       "SEA", // Seattle-Tacoma
	"atlanta":       "ATL", // Hartsfield-Jackson
	"denver":        "DEN", // Denver International
	"las vegas":     "LAS", // Harry Reid
	"toronto":       "YYZ", // Pearson
	"vancouver":     "YVR", // Vancouver International
	"mexico city":   "MEX", // Benito Juárez
	"cancun":        "CUN", // Cancún International

	// Europe
	"london":    "LHR", // Heathrow
	"paris":     "CDG", // Charles de Gaulle
	"amsterdam": "AMS", // Schiphol
	"frankfurt": "FRA", // Frankfurt am Main
	"madrid":    "MAD", // Barajas
	"barcelona": "BCN", // El Prat
	"lisbon":    "LIS", // Humberto Delgado
	"rome":      "FCO", // Fiumicino
	"berlin":    "BER", // Brandenburg
	"reykjavik": "KEF", // Keflavík
	"istanbul":  "IST", // Istanbul Airport
	"athens":    "ATH", // Eleftherios Venizelos
	"dublin":    "DUB", // Dublin Airport

	// Asia / Pacific
	"tokyo":     "HND", // Haneda
	"seoul":     "ICN", // Incheon
	"singapore": "SIN", // Changi
	"bangkok":   "BKK", // Suvarnabhumi
	"hong kong": "HKG", // Chek Lap Kok
	"dubai":     "DXB", // Dubai International
	"sydney":    "SYD", // Kingsford Smith
	"jakarta":   "CGK", // Soekarno-Hatta
	"bali":      "DPS", // Ngurah Rai
	"denpasar":  "DPS", // Ngurah Rai
	"surabaya":  "SUB", // Juanda
	"makassar":  "UPG", // Sultan Hasanuddin
}
