package checkcareerreadiness

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	ReadinessScore      int            `json:"readinessScore"`
	ReadinessLevel      string         `json:"readinessLevel"`
	Components          map[string]int `json:"readinessComponents"`
	Feedback            []string       `json:"readinessFeedback"`
	ProfileCompleteness float64        `json:"profileCompleteness"`
	ResumeScore         *int           `json:"resumeScore,omitempty"`
	ResumeScoreSource   string         `json:"resumeScoreSource"`
	Recommendations     []string       `json:"recommendations"`
	NextActions         []string       `json:"nextActions"`
}
