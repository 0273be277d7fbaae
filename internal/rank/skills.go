package rank

import "sort"

// ScoreSkills matches every profiled skill as a whole word in text and
// normalizes the summed weights against the fixed 100-point ceiling.
// Returns all matches sorted by weight descending; callers truncate for
// display.
func (e *Engine) ScoreSkills(text string) (float64, []Match) {
	text = Normalize(text)

	var matches []Match
	total := 0.0
	for _, s := range e.skills {
		if s.re.MatchString(text) {
			matches = append(matches, Match{Term: s.term, Weight: s.weight})
			total += s.weight
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Weight > matches[j].Weight })

	score := min(100, total/skillWeightCeiling*100)
	return score, matches
}

// ScoreRedFlags sums the (negative) penalties of every matched flag, floored
// at -50 so a flag pile-up cannot sink the whole score. The matches list is
// never truncated.
func (e *Engine) ScoreRedFlags(text string) (float64, []Flag) {
	text = Normalize(text)

	var matches []Flag
	total := 0.0
	for _, f := range e.redFlags {
		if f.re.MatchString(text) {
			matches = append(matches, Flag{Term: f.term, Penalty: f.weight})
			total += f.weight
		}
	}

	return max(total, redFlagFloor), matches
}
