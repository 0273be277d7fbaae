package rank

import "jobtrack-engine/internal/domain"

// Scorer is what the scrape pipeline and the HTTP layer depend on; Engine is
// the one real implementation.
type Scorer interface {
	ScoreJob(p domain.Posting) (*Result, error)
}
