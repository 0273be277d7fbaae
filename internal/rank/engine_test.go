package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/profile"
)

func refDoc() *profile.Document {
	threshold := 75.0
	doc := &profile.Document{
		Profile: &profile.Person{
			Name:            "Test Candidate",
			YearsExperience: 6,
			MinSalary:       2400000,
		},
		Skills: &profile.SkillTiers{
			Critical: profile.Tier{Items: map[string]float64{
				"SQL":             10,
				"Python":          10,
				"ETL":             10,
				"Snowflake":       10,
				"Data Quality":    10,
				"Pytest":          10,
				"Test Automation": 10,
				"Data Validation": 10,
			}},
			HighValue: profile.Tier{Items: map[string]float64{
				"AWS":      8,
				"Redshift": 7,
				"Airflow":  7,
			}},
			NiceToHave: profile.Tier{Items: map[string]float64{
				"Docker":  4,
				"Grafana": 3,
			}},
		},
		RedFlags: &profile.RedFlagCats{
			DealBreakers: profile.Tier{Items: map[string]float64{
				"bench sales":      -25,
				"client placement": -20,
			}},
			ConsultancySignals: profile.Tier{Items: map[string]float64{
				"staffing":    -15,
				"third party": -10,
			}},
			ManualTestingOnly: profile.Tier{Items: map[string]float64{
				"manual testing only": -15,
			}},
			OutdatedTech: profile.Tier{Items: map[string]float64{
				"cobol": -10,
			}},
		},
		Domains: &profile.Tier{Items: map[string]float64{
			"ETL/DWH":        8,
			"Data Warehouse": 8,
			"Data Quality":   8,
			"Analytics":      6,
			"Fintech":        5,
		}},
		ScoringWeights: map[string]float64{
			"skills_match":     0.4,
			"experience_match": 0.2,
			"domain_match":     0.2,
			"location_match":   0.1,
			"red_flags":        0.1,
		},
		AutoImportThreshold: &threshold,
	}
	doc.Filters.LocationKeywords.Acceptable = []string{"Bangalore", "Hyderabad", "Pune"}
	return doc
}

func refEngine() *Engine {
	return NewEngine(refDoc(), nil)
}

func TestScoreJobRequiredFields(t *testing.T) {
	e := refEngine()

	_, err := e.ScoreJob(domain.Posting{Description: "something"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.ScoreJob(domain.Posting{Title: "QA Engineer"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.ScoreJob(domain.Posting{Title: "  ", Description: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreJobDeterministic(t *testing.T) {
	e := refEngine()
	p := domain.Posting{
		Title:       "Data QA Engineer",
		Description: "SQL, Python, ETL and AWS work on our analytics platform",
		Location:    "Remote",
		Tags:        "SQL, Python",
	}

	first, err := e.ScoreJob(p)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.ScoreJob(p)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSkillsWordBoundary(t *testing.T) {
	e := refEngine()

	score, matches := e.ScoreSkills("Built MySQLite wrappers")
	assert.Zero(t, score)
	assert.Empty(t, matches)

	score, matches = e.ScoreSkills("Strong SQL skills required")
	assert.InDelta(t, 10, score, 1e-9)
	require.Len(t, matches, 1)
	assert.Equal(t, "SQL", matches[0].Term)
	assert.Equal(t, 10.0, matches[0].Weight)
}

func TestSkillsSaturation(t *testing.T) {
	threshold := 75.0
	doc := refDoc()
	doc.Skills = &profile.SkillTiers{
		Critical: profile.Tier{Items: map[string]float64{
			"alpha": 100, "bravo": 100, "charlie": 100, "delta": 100, "echo": 100,
		}},
	}
	doc.AutoImportThreshold = &threshold
	e := NewEngine(doc, nil)

	// 500 weight-points saturates at the same score as exactly 100.
	many, _ := e.ScoreSkills("alpha bravo charlie delta echo")
	one, _ := e.ScoreSkills("alpha")
	assert.Equal(t, 100.0, many)
	assert.Equal(t, 100.0, one)
}

func TestSkillsMatchesSortedByWeight(t *testing.T) {
	e := refEngine()
	_, matches := e.ScoreSkills("Docker and AWS and SQL")
	require.Len(t, matches, 3)
	assert.Equal(t, "SQL", matches[0].Term)
	assert.Equal(t, "AWS", matches[1].Term)
	assert.Equal(t, "Docker", matches[2].Term)
}

func TestRedFlagFloor(t *testing.T) {
	e := refEngine()
	text := "bench sales client placement via staffing and third party, manual testing only, cobol"

	penalty, flags := e.ScoreRedFlags(text)
	assert.Equal(t, -50.0, penalty)
	// matches are reported in full even when the penalty is floored
	assert.Len(t, flags, 6)
}

func TestDomainFragments(t *testing.T) {
	e := refEngine()

	// Either fragment of "ETL/DWH" matches, but only once per domain.
	score, matches := e.ScoreDomains("etl and dwh pipelines")
	assert.InDelta(t, 16, score, 1e-9) // 8 / 50 * 100
	require.Len(t, matches, 1)
	assert.Equal(t, "ETL/DWH", matches[0].Term)

	score, _ = e.ScoreDomains("dwh pipelines only")
	assert.InDelta(t, 16, score, 1e-9)
}

func TestDomainShortFragmentsIgnored(t *testing.T) {
	threshold := 75.0
	doc := refDoc()
	doc.Domains = &profile.Tier{Items: map[string]float64{"Go/ML": 10}}
	doc.AutoImportThreshold = &threshold
	e := NewEngine(doc, nil)

	score, matches := e.ScoreDomains("go and ml experience")
	assert.Zero(t, score)
	assert.Empty(t, matches)
}

func TestTierMergeLastWriteWins(t *testing.T) {
	threshold := 75.0
	doc := refDoc()
	doc.Skills = &profile.SkillTiers{
		Critical:   profile.Tier{Items: map[string]float64{"python": 10}},
		NiceToHave: profile.Tier{Items: map[string]float64{"python": 3}},
	}
	doc.AutoImportThreshold = &threshold
	e := NewEngine(doc, nil)

	score, matches := e.ScoreSkills("python")
	assert.InDelta(t, 3, score, 1e-9)
	require.Len(t, matches, 1)
	assert.Equal(t, 3.0, matches[0].Weight)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Classification
	}{
		{100, Excellent},
		{85, Excellent},
		{84.99, HighFit},
		{75, HighFit},
		{74.99, MediumFit},
		{65, MediumFit},
		{64.99, LowFit},
		{40, LowFit},
		{39.99, NoFit},
		{0, NoFit},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score), "score %v", tc.score)
	}
}

func TestScoreJobMissingFieldDefaults(t *testing.T) {
	e := refEngine()

	res, err := e.ScoreJob(domain.Posting{
		Title:       "QA Engineer",
		Description: "some testing role",
	})
	require.NoError(t, err)
	assert.Equal(t, "N/A", res.JobInfo.Location)
	assert.Equal(t, "N/A", res.JobInfo.Company)
	assert.Equal(t, 50.0, res.Breakdown.LocationScore)
	// absent experience requirement cannot penalize
	assert.Equal(t, 100.0, res.Breakdown.ExperienceScore)
}

func TestScoreJobEndToEnd(t *testing.T) {
	e := refEngine()

	res, err := e.ScoreJob(domain.Posting{
		Title: "Data QA Engineer",
		Description: "We need a Data QA Engineer to validate ETL pipelines, test our " +
			"Snowflake data warehouse on AWS and Redshift, write SQL queries for data " +
			"validation, and automate testing with Python and Pytest. Strong data quality " +
			"and test automation background required for our analytics platform.",
		Location:           "Remote",
		Company:            "DataTech",
		Tags:               "SQL, Python, AWS, ETL, Snowflake, Data Quality",
		ExperienceRequired: "5-7 years",
	})
	require.NoError(t, err)

	assert.Contains(t, []Classification{Excellent, HighFit}, res.Classification)
	assert.True(t, res.ShouldAutoImport)
	assert.GreaterOrEqual(t, res.FinalScore, 75.0)
	assert.LessOrEqual(t, res.FinalScore, 100.0)
	assert.Equal(t, 100.0, res.Breakdown.LocationScore)
	assert.Equal(t, 100.0, res.Breakdown.ExperienceScore)
	assert.Equal(t, 0.0, res.Breakdown.RedFlagPenalty)
	assert.LessOrEqual(t, len(res.MatchedSkills), 10)
	assert.LessOrEqual(t, len(res.MatchedDomains), 5)
	assert.Contains(t, res.Recommendation, "%")
}

func TestScoreJobRangeInvariant(t *testing.T) {
	e := refEngine()

	postings := []domain.Posting{
		{Title: "t", Description: "nothing relevant at all"},
		{Title: "t", Description: "bench sales client placement staffing third party cobol manual testing only"},
		{Title: "t", Description: "sql python etl snowflake aws redshift airflow docker grafana pytest data quality test automation data validation analytics etl dwh data warehouse fintech", Location: "Remote", ExperienceRequired: "6 years"},
	}
	for _, p := range postings {
		res, err := e.ScoreJob(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.FinalScore, 0.0)
		assert.LessOrEqual(t, res.FinalScore, 100.0)
		assert.GreaterOrEqual(t, res.Breakdown.RedFlagPenalty, -50.0)
		assert.LessOrEqual(t, res.Breakdown.RedFlagPenalty, 0.0)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "a b c", Normalize("  A \n\t B\r\n  c  "))
	assert.Equal(t, "sql and python", Normalize("SQL\nand\nPYTHON"))
}
