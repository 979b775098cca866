package scorerecruiterengagement

type Input struct {
	UserID      string `json:"userId"`
	RecruiterID string `json:"recruiterId"`
}

type Output struct {
	RecruiterID          string         `json:"recruiterId"`
	EngagementScore      int            `json:"engagementScore"`
	EngagementComponents map[string]int `json:"engagementComponents"`
	EngagementFeedback   []string       `json:"engagementFeedback"`
	FitScore             int            `json:"fitScore"`
	FitComponents        map[string]int `json:"fitComponents"`
	FitFeedback          []string       `json:"fitFeedback"`
	Suggestions          []string       `json:"relationshipSuggestions"`
	DaysSinceContact     int            `json:"daysSinceContact"`
	Stage                string         `json:"stage"`
	Persisted            bool           `json:"scoresPersisted"`
}
