package criteria

import "strings"

// countryNames maps folded English and Spanish country names to ISO 3166-1 alpha-2 codes
var countryNames = map[string]string{
	"spain":          "ES",
	"espana":         "ES",
	"portugal":       "PT",
	"france":         "FR",
	"francia":        "FR",
	"germany":        "DE",
	"alemania":       "DE",
	"italy":          "IT",
	"italia":         "IT",
	"united kingdom": "GB",
	"reino unido":    "GB",
	"uk":             "GB",
	"great britain":  "GB",
	"ireland":        "IE",
	"irlanda":        "IE",
	"netherlands":    "NL",
	"paises bajos":   "NL",
	"holanda":        "NL",
	"belgium":        "BE",
	"belgica":        "BE",
	"switzerland":    "CH",
	"suiza":          "CH",
	"austria":        "AT",
	"poland":         "PL",
	"polonia":        "PL",
	"sweden":         "SE",
	"suecia":         "SE",
	"norway":         "NO",
	"noruega":        "NO",
	"denmark":        "DK",
	"dinamarca":      "DK",
	"finland":        "FI",
	"finlandia":      "FI",
	"united states":  "US",
	"estados unidos": "US",
	"usa":            "US",
	"eeuu":           "US",
	"canada":         "CA",
	"mexico":         "MX",
	"argentina":      "AR",
	"chile":          "CL",
	"colombia":       "CO",
	"peru":           "PE",
	"uruguay":        "UY",
	"brazil":         "BR",
	"brasil":         "BR",
	"australia":      "AU",
	"india":          "IN",
}

// knownCodes is the set of codes accepted verbatim when typed as a code
var knownCodes = func() map[string]bool {
	codes := make(map[string]bool, len(countryNames))
	for _, code := range countryNames {
		codes[code] = true
	}
	return codes
}()

// ResolveLocation maps a human-entered location to an ISO country code.
// ok is false when the input is not a known country; callers keep the text verbatim then.
func ResolveLocation(raw string) (code string, ok bool) {
	key := fold(raw)
	if key == "" {
		return "", false
	}
	if up := strings.ToUpper(key); len(up) == 2 && knownCodes[up] {
		return up, true
	}
	code, ok = countryNames[key]
	return code, ok
}

// IsCountryCode reports whether v is a canonical code produced by ResolveLocation
func IsCountryCode(v string) bool {
	return len(v) == 2 && knownCodes[v]
}
