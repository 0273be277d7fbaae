package rank

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"jobtrack-engine/internal/domain"
)

// ErrInvalidInput means a posting is missing a required field. The call is
// rejected; engine state is untouched and the caller may keep scoring.
var ErrInvalidInput = errors.New("invalid posting")

// ScoreJob runs the five sub-scorers and aggregates them into a final score,
// tier and recommendation. Title and description are required; location and
// experience use their dedicated fields, everything else is matched against
// one combined text blob.
func (e *Engine) ScoreJob(p domain.Posting) (*Result, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	blob := strings.Join([]string{p.Title, p.Description, p.Tags, p.Company}, " ")

	skillsScore, matchedSkills := e.ScoreSkills(blob)
	redFlagPenalty, flags := e.ScoreRedFlags(blob)
	domainScore, matchedDomains := e.ScoreDomains(blob)
	locationScore := e.ScoreLocation(p.Location)
	experienceScore := e.ScoreExperience(p.ExperienceRequired, e.resumeYears)

	final := skillsScore*e.weights.Skills +
		experienceScore*e.weights.Experience +
		domainScore*e.weights.Domain +
		locationScore*e.weights.Location +
		redFlagPenalty*e.weights.RedFlags

	final = max(0, min(100, final))

	class := Classify(final)

	res := &Result{
		FinalScore:     round2(final),
		Classification: class,
		Recommendation: recommendation(class, final),
		Breakdown: Breakdown{
			SkillsScore:     round2(skillsScore),
			ExperienceScore: round2(experienceScore),
			DomainScore:     round2(domainScore),
			LocationScore:   round2(locationScore),
			RedFlagPenalty:  round2(redFlagPenalty),
		},
		MatchedSkills:  truncMatches(matchedSkills, 10),
		MatchedDomains: truncMatches(matchedDomains, 5),
		RedFlags:       flags,
		JobInfo: JobInfo{
			Title:    p.Title,
			Company:  orNA(p.Company),
			Location: orNA(p.Location),
		},
		ShouldAutoImport: final >= e.autoImportThreshold,
	}

	e.log.Info("scored job",
		zap.String("title", p.Title),
		zap.Float64("score", res.FinalScore),
		zap.String("classification", string(class)),
	)
	return res, nil
}

func truncMatches(m []Match, n int) []Match {
	if len(m) > n {
		return m[:n]
	}
	return m
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
