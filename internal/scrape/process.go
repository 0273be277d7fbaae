package scrape

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/scrape/types"
	"jobtrack-engine/internal/store"
)

// ProcessLeads scores each relevant lead and stores it, skipping duplicates.
// Returns how many rows were newly added.
func ProcessLeads(ctx context.Context, db *sql.DB, scorer rank.Scorer, keywords []string, source string, leads []types.Lead, onNewJob func(), log *zap.Logger) (added int) {
	if log == nil {
		log = zap.NewNop()
	}

	for _, lead := range leads {
		if !Relevant(keywords, lead) {
			log.Debug("lead skipped",
				zap.String("source", source),
				zap.String("reason", "no_keyword_match"),
				zap.String("title", lead.Posting.Title))
			continue
		}

		res, err := scorer.ScoreJob(lead.Posting)
		if err != nil {
			log.Warn("lead not scorable",
				zap.String("source", source),
				zap.String("title", lead.Posting.Title),
				zap.Error(err))
			continue
		}

		row := scrapedRow(lead, source, res)
		ok, err := store.InsertScrapedIgnore(ctx, db, row)
		if err != nil {
			log.Error("insert failed",
				zap.String("source", source),
				zap.String("external_id", lead.ExternalID),
				zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		added++
		if res.Classification == rank.Excellent || res.Classification == rank.HighFit {
			log.Info("high fit",
				zap.String("company", row.Company),
				zap.String("title", row.Title),
				zap.Float64("score", row.MatchScore))
		}
		if onNewJob != nil {
			onNewJob()
		}
	}

	return added
}

func scrapedRow(lead types.Lead, source string, res *rank.Result) store.ScrapedJob {
	skills, _ := json.Marshal(res.MatchedSkills)
	domains, _ := json.Marshal(res.MatchedDomains)
	flags, _ := json.Marshal(res.RedFlags)

	return store.ScrapedJob{
		ExternalID:     lead.ExternalID,
		Source:         source,
		Title:          lead.Posting.Title,
		Company:        lead.Posting.Company,
		URL:            lead.URL,
		Location:       lead.Posting.Location,
		Description:    lead.Posting.Description,
		Tags:           lead.Posting.Tags,
		SalaryRange:    lead.SalaryRange,
		PostedDate:     lead.PostedDate,
		MatchScore:     res.FinalScore,
		Classification: string(res.Classification),
		MatchedSkills:  skills,
		MatchedDomains: domains,
		RedFlags:       flags,
		Recommendation: res.Recommendation,
	}
}
