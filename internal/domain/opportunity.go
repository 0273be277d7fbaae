package domain

// Opportunity is a tracked lead in the pipeline (imported scraped job or
// manually added).
type Opportunity struct {
	ID             int64  `json:"id"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	Source         string `json:"source"`
	IsRemote       bool   `json:"is_remote"`
	TechStack      string `json:"tech_stack"`
	SalaryRange    string `json:"salary_range,omitempty"`
	RecruiterName  string `json:"recruiter_name,omitempty"`
	RecruiterPhone string `json:"recruiter_phone,omitempty"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
}
