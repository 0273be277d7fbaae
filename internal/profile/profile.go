// Package profile loads the resume profile document that drives job scoring:
// weighted skills, red flags, domains, scoring weights and thresholds.
package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound means the profile document does not exist at the given path.
	ErrNotFound = errors.New("profile not found")
	// ErrMalformed means the document exists but cannot be used: unparsable,
	// or a required section is missing.
	ErrMalformed = errors.New("profile malformed")
)

// requiredWeightKeys is the fixed, exhaustive key set of scoring_weights.
var requiredWeightKeys = []string{
	"skills_match",
	"experience_match",
	"domain_match",
	"location_match",
	"red_flags",
}

type Person struct {
	Name            string  `yaml:"name"`
	YearsExperience int     `yaml:"years_experience"`
	MinSalary       float64 `yaml:"min_salary"`
}

// Tier is one weighted-term category ({items: {term: weight}}).
type Tier struct {
	Items map[string]float64 `yaml:"items"`
}

// SkillTiers: ordered from most to least important. Merge order matters:
// a term repeated in a later tier overwrites the earlier weight.
type SkillTiers struct {
	Critical   Tier `yaml:"critical"`
	HighValue  Tier `yaml:"high_value"`
	NiceToHave Tier `yaml:"nice_to_have"`
}

// RedFlagCats: penalty weights are negative. Categories are optional
// individually, the red_flags section itself is not.
type RedFlagCats struct {
	DealBreakers       Tier `yaml:"deal_breakers"`
	ConsultancySignals Tier `yaml:"consultancy_signals"`
	ManualTestingOnly  Tier `yaml:"manual_testing_only"`
	OutdatedTech       Tier `yaml:"outdated_tech"`
}

type Filters struct {
	LocationKeywords struct {
		Acceptable []string `yaml:"acceptable"`
	} `yaml:"location_keywords"`
}

// Document is the parsed profile. Required sections are pointers so a
// missing section is distinguishable from an empty one.
type Document struct {
	Profile             *Person            `yaml:"profile"`
	Skills              *SkillTiers        `yaml:"skills"`
	RedFlags            *RedFlagCats       `yaml:"red_flags"`
	Domains             *Tier              `yaml:"domains"`
	ScoringWeights      map[string]float64 `yaml:"scoring_weights"`
	AutoImportThreshold *float64           `yaml:"auto_import_threshold"`
	Filters             Filters            `yaml:"filters"`
}

// Load reads and validates the profile document. YAML is a superset of the
// original JSON profile format, so both .yml and .json documents parse.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// validate enforces the required top-level sections and the fixed
// scoring_weights key set. A failure here must abort engine construction,
// never degrade to a partial profile.
func (d *Document) validate() error {
	switch {
	case d.Skills == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "skills")
	case d.RedFlags == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "red_flags")
	case d.Domains == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "domains")
	case d.ScoringWeights == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "scoring_weights")
	case d.Profile == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "profile")
	case d.AutoImportThreshold == nil:
		return fmt.Errorf("%w: missing section %q", ErrMalformed, "auto_import_threshold")
	}

	for _, k := range requiredWeightKeys {
		if _, ok := d.ScoringWeights[k]; !ok {
			return fmt.Errorf("%w: scoring_weights missing key %q", ErrMalformed, k)
		}
	}
	if d.Profile.YearsExperience < 0 {
		return fmt.Errorf("%w: profile.years_experience must be >= 0", ErrMalformed)
	}
	return nil
}
