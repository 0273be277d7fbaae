// Package rank implements the job scoring engine: a weighted multi-factor
// match of a job posting against the loaded resume profile.
//
// Weighting (reference profile): skills 40%, experience 20%, domain 20%,
// location 10%, red flags 10% (negative).
package rank

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"jobtrack-engine/internal/profile"
)

// Normalization ceilings are assumptions about the profile's weight
// distribution, not derived from it: 100 weight-points of skills (ten
// critical skills at 10) and 50 weight-points of domains map to a full
// sub-score. Keep literal unless the profile format grows its own ceiling.
const (
	skillWeightCeiling  = 100.0
	domainWeightCeiling = 50.0
	redFlagFloor        = -50.0
)

type weightedTerm struct {
	term   string
	weight float64
	re     *regexp.Regexp
}

// domainEntry is one domain label with its synonym fragments pre-split and
// compiled ("ETL/DWH" -> etl, dwh).
type domainEntry struct {
	label  string
	weight float64
	parts  []*regexp.Regexp
}

// ScoreWeights are the five fixed aggregation fractions from scoring_weights.
type ScoreWeights struct {
	Skills     float64
	Experience float64
	Domain     float64
	Location   float64
	RedFlags   float64
}

// Engine scores postings against one immutable profile. It holds no mutable
// state, so one shared Engine is safe for concurrent ScoreJob calls; a
// profile reload must build a new Engine, not mutate this one.
type Engine struct {
	skills   []weightedTerm
	redFlags []weightedTerm
	domains  []domainEntry

	weights             ScoreWeights
	resumeYears         int
	autoImportThreshold float64
	acceptableLocations []string

	log *zap.Logger
}

// NewEngine flattens the profile document into matcher tables. The document
// is assumed validated by profile.Load.
func NewEngine(doc *profile.Document, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	// Ordered fold, most important tier first; a duplicate term in a later
	// tier overwrites the earlier weight (last-write-wins).
	skills := foldTiers(log, "skill",
		doc.Skills.Critical.Items,
		doc.Skills.HighValue.Items,
		doc.Skills.NiceToHave.Items,
	)
	redFlags := foldTiers(log, "red_flag",
		doc.RedFlags.DealBreakers.Items,
		doc.RedFlags.ConsultancySignals.Items,
		doc.RedFlags.ManualTestingOnly.Items,
		doc.RedFlags.OutdatedTech.Items,
	)

	e := &Engine{
		skills:   compileTerms(skills),
		redFlags: compileTerms(redFlags),
		domains:  compileDomains(doc.Domains.Items),
		weights: ScoreWeights{
			Skills:     doc.ScoringWeights["skills_match"],
			Experience: doc.ScoringWeights["experience_match"],
			Domain:     doc.ScoringWeights["domain_match"],
			Location:   doc.ScoringWeights["location_match"],
			RedFlags:   doc.ScoringWeights["red_flags"],
		},
		resumeYears:         doc.Profile.YearsExperience,
		autoImportThreshold: *doc.AutoImportThreshold,
		acceptableLocations: doc.Filters.LocationKeywords.Acceptable,
		log:                 log,
	}

	log.Debug("scoring engine ready",
		zap.Int("skills", len(e.skills)),
		zap.Int("red_flags", len(e.redFlags)),
		zap.Int("domains", len(e.domains)),
		zap.Float64("auto_import_threshold", e.autoImportThreshold),
	)
	return e
}

func foldTiers(log *zap.Logger, kind string, tiers ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, tier := range tiers {
		for term, w := range tier {
			if prev, ok := out[term]; ok {
				log.Warn("profile term redefined, keeping later tier",
					zap.String("kind", kind),
					zap.String("term", term),
					zap.Float64("old_weight", prev),
					zap.Float64("new_weight", w),
				)
			}
			out[term] = w
		}
	}
	return out
}

// compileTerms produces a deterministically ordered matcher table; map
// iteration order must not leak into results.
func compileTerms(m map[string]float64) []weightedTerm {
	out := make([]weightedTerm, 0, len(m))
	for term, w := range m {
		out = append(out, weightedTerm{
			term:   term,
			weight: w,
			re:     wordPattern(term),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].term < out[j].term })
	return out
}

func compileDomains(m map[string]float64) []domainEntry {
	out := make([]domainEntry, 0, len(m))
	for label, w := range m {
		e := domainEntry{label: label, weight: w}
		for _, part := range splitDomainLabel(label) {
			e.parts = append(e.parts, wordPattern(part))
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}

// splitDomainLabel breaks a label into synonym fragments on "/" and ",".
// Fragments of 2 characters or fewer are too noisy to match and are dropped.
func splitDomainLabel(label string) []string {
	raw := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return r == '/' || r == ','
	})
	var parts []string
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if len(p) > 2 {
			parts = append(parts, p)
		}
	}
	return parts
}

// wordPattern matches the term as a whole word: "sql" must hit in
// "strong sql skills" but never inside "mysqlite".
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}
