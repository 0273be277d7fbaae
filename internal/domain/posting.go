package domain

// Posting is one job posting handed to the scoring engine. Title and
// Description are required; everything else is best-effort free text.
type Posting struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Location           string `json:"location,omitempty"`
	Company            string `json:"company,omitempty"`
	Tags               string `json:"tags,omitempty"` // comma-joined
	ExperienceRequired string `json:"experience_required,omitempty"`
}
