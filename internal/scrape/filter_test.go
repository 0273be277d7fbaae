package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/scrape/types"
)

func lead(title, desc, tags string) types.Lead {
	return types.Lead{Posting: domain.Posting{Title: title, Description: desc, Tags: tags}}
}

func TestRelevant(t *testing.T) {
	keywords := []string{"etl", "data quality", "sql"}

	assert.True(t, Relevant(keywords, lead("Senior ETL Developer", "", "")))
	assert.True(t, Relevant(keywords, lead("Engineer", "owning data quality checks", "")))
	assert.True(t, Relevant(keywords, lead("Engineer", "", "python, sql")))
	assert.False(t, Relevant(keywords, lead("Frontend Developer", "React and CSS", "react")))

	// case-insensitive both ways
	assert.True(t, Relevant([]string{"SQL"}, lead("sql tuning", "", "")))

	// no keywords keeps everything
	assert.True(t, Relevant(nil, lead("Anything", "", "")))

	// blank keywords are ignored
	assert.False(t, Relevant([]string{" ", ""}, lead("Frontend Developer", "", "")))
}
