package rank

import "fmt"

// Classification buckets a final score into one of five ordered tiers.
type Classification string

const (
	Excellent Classification = "EXCELLENT"
	HighFit   Classification = "HIGH_FIT"
	MediumFit Classification = "MEDIUM_FIT"
	LowFit    Classification = "LOW_FIT"
	NoFit     Classification = "NO_FIT"
)

// Classify applies the inclusive tier thresholds to a clamped final score.
func Classify(score float64) Classification {
	switch {
	case score >= 85:
		return Excellent
	case score >= 75:
		return HighFit
	case score >= 65:
		return MediumFit
	case score >= 40:
		return LowFit
	default:
		return NoFit
	}
}

// Match is one matched skill or domain term.
type Match struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Flag is one matched red-flag term with its (negative) penalty.
type Flag struct {
	Term    string  `json:"term"`
	Penalty float64 `json:"penalty"`
}

type Breakdown struct {
	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	DomainScore     float64 `json:"domain_score"`
	LocationScore   float64 `json:"location_score"`
	RedFlagPenalty  float64 `json:"red_flag_penalty"`
}

type JobInfo struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// Result is the full scoring breakdown for one posting. It serializes
// directly to the JSON shape the dashboard and store consume.
type Result struct {
	FinalScore       float64        `json:"final_score"`
	Classification   Classification `json:"classification"`
	Recommendation   string         `json:"recommendation"`
	Breakdown        Breakdown      `json:"breakdown"`
	MatchedSkills    []Match        `json:"matched_skills"`
	MatchedDomains   []Match        `json:"matched_domains"`
	RedFlags         []Flag         `json:"red_flags"`
	JobInfo          JobInfo        `json:"job_info"`
	ShouldAutoImport bool           `json:"should_auto_import"`
}

func recommendation(c Classification, score float64) string {
	switch c {
	case Excellent:
		return fmt.Sprintf("APPLY IMMEDIATELY - Outstanding match (%.1f%%)", score)
	case HighFit:
		return fmt.Sprintf("STRONG CANDIDATE - Apply today (%.1f%%)", score)
	case MediumFit:
		return fmt.Sprintf("REVIEW CAREFULLY - Consider applying (%.1f%%)", score)
	case LowFit:
		return fmt.Sprintf("WEAK MATCH - Likely not worth time (%.1f%%)", score)
	default:
		return fmt.Sprintf("SKIP - Poor fit (%.1f%%)", score)
	}
}
