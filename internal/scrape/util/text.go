package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// HTMLText strips markup from a job description. Source APIs ship
// descriptions as HTML; the scorer wants plain text. Falls back to the raw
// input when parsing fails.
func HTMLText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(doc.Text())
}

func JoinTags(tags []string) string {
	var out []string
	for _, t := range tags {
		t = CleanText(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}
