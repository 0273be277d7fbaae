package rank

import "sort"

// ScoreDomains counts a domain as matched when any of its synonym fragments
// appears as a whole word; the first fragment hit wins so a label like
// "ETL/DWH" is never double-counted. Summed weights normalize against the
// fixed 50-point ceiling.
func (e *Engine) ScoreDomains(text string) (float64, []Match) {
	text = Normalize(text)

	var matches []Match
	total := 0.0
	for _, d := range e.domains {
		for _, part := range d.parts {
			if part.MatchString(text) {
				matches = append(matches, Match{Term: d.label, Weight: d.weight})
				total += d.weight
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Weight > matches[j].Weight })

	score := min(100, total/domainWeightCeiling*100)
	return score, matches
}
