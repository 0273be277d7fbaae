package rank

import "strings"

var remoteKeywords = []string{"remote", "anywhere", "work from home", "wfh"}

// ScoreLocation rates a raw location string. Rules apply in order, first hit
// wins: missing 50, remote 100, hybrid 50, configured acceptable keyword 30,
// anything else 0 (on-site or unknown).
func (e *Engine) ScoreLocation(location string) float64 {
	if location == "" {
		return 50
	}

	location = Normalize(location)

	for _, kw := range remoteKeywords {
		if strings.Contains(location, kw) {
			return 100
		}
	}

	if strings.Contains(location, "hybrid") {
		return 50
	}

	for _, kw := range e.acceptableLocations {
		if kw != "" && strings.Contains(location, strings.ToLower(kw)) {
			return 30
		}
	}

	return 0
}
