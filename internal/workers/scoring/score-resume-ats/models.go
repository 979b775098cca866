package scoreresumeats

type Input struct {
	UserID         string            `json:"userId"`
	ResumeID       string            `json:"resumeId"`
	Text           string            `json:"resumeText"`
	ParsedSections map[string]string `json:"parsedSections"`
	JobKeywords    []string          `json:"jobKeywords"`
	TargetRole     string            `json:"targetRole"`
	FileType       string            `json:"fileType"`
}

type Output struct {
	ATSScore        int            `json:"atsScore"`
	Components      map[string]int `json:"atsComponents"`
	Feedback        []string       `json:"atsFeedback"`
	Suggestions     []string       `json:"atsSuggestions"`
	MissingKeywords []string       `json:"missingKeywords"`
	WeakSections    []string       `json:"weakSections"`
	Recommendations []string       `json:"atsRecommendations"`
	ScoreID         string         `json:"atsScoreId,omitempty"`
	Indexed         bool           `json:"atsIndexed"`
}
