package scrape

import (
	"strings"

	"jobtrack-engine/internal/scrape/types"
)

// Relevant reports whether a lead mentions any configured keyword in its
// title, description, or tags. An empty keyword list keeps everything.
func Relevant(keywords []string, lead types.Lead) bool {
	if len(keywords) == 0 {
		return true
	}

	blob := strings.ToLower(strings.Join([]string{
		lead.Posting.Title,
		lead.Posting.Description,
		lead.Posting.Tags,
	}, " "))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}
