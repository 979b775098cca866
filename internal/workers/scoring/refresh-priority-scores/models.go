package refreshpriorityscores

import "jobezie-workers/internal/scoring"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	RunID        string                  `json:"refreshRunId"`
	Updated      int                     `json:"recruitersUpdated"`
	TopFollowUps []scoring.PipelineEntry `json:"topFollowUps"`
	RefreshedAt  string                  `json:"refreshedAt"`
}
