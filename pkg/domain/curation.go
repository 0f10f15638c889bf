package domain

// CurationResult holds the AI-assigned importance assessment for an article
type CurationResult struct {
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Category Category `json:"category"`
	Urgency  Urgency  `json:"urgency"`
	Topics   []string `json:"topics"`
}

// DefaultCuration returns the neutral result substituted whenever curation
// fails or produces an invalid score. The reason explains what happened.
func DefaultCuration(reason string) CurationResult {
	return CurationResult{
		Score:    5,
		Reason:   reason,
		Category: CategoryOther,
		Urgency:  UrgencyMedium,
		Topics:   []string{},
	}
}

// Valid reports whether the result can be used as-is. A score outside [0,10]
// invalidates the whole result, not just the score field.
func (c *CurationResult) Valid() bool {
	return c.Score >= 0 && c.Score <= 10
}

// Normalize backfills missing optional fields without touching the score
func (c *CurationResult) Normalize() {
	if c.Reason == "" {
		c.Reason = "No reason provided"
	}
	if c.Category == "" {
		c.Category = CategoryOther
	}
	if c.Urgency == "" {
		c.Urgency = UrgencyMedium
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
}

// Apply copies curation fields onto the article
func (c *CurationResult) Apply(a *Article) {
	a.ImportanceScore = c.Score
	a.ImportanceReason = c.Reason
	a.Category = c.Category
	a.Urgency = c.Urgency
	a.Topics = c.Topics
}
