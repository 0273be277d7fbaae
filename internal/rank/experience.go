package rank

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ScoreExperience rates an experience-requirement string ("5-8 years",
// "3+ years") against the candidate's years. An absent or unparseable
// requirement cannot penalize, so it scores 100.
func (e *Engine) ScoreExperience(requirement string, resumeYears int) float64 {
	if requirement == "" {
		return 100
	}

	requirement = Normalize(requirement)

	numbers := digitsRe.FindAllString(requirement, -1)
	if len(numbers) == 0 {
		return 100
	}

	if len(numbers) == 1 {
		required, _ := strconv.Atoi(numbers[0])

		if strings.Contains(requirement, "+") ||
			strings.Contains(requirement, "plus") ||
			strings.Contains(requirement, "more") {
			// Open-ended minimum.
			switch {
			case resumeYears >= required:
				return 100
			case resumeYears >= required-1:
				return 80
			default:
				return 50
			}
		}

		// Exact target.
		diff := resumeYears - required
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			return 100
		case diff <= 1:
			return 90
		case diff <= 2:
			return 70
		default:
			return 50
		}
	}

	// Range: first two numbers in source order, not re-sorted.
	minYears, _ := strconv.Atoi(numbers[0])
	maxYears, _ := strconv.Atoi(numbers[1])

	switch {
	case resumeYears >= minYears && resumeYears <= maxYears:
		return 100
	case resumeYears > maxYears:
		if resumeYears-maxYears <= 2 {
			return 80
		}
		return 60
	default:
		if minYears-resumeYears <= 1 {
			return 70
		}
		return 40
	}
}
