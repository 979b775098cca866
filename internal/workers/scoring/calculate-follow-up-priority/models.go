package calculatefollowuppriority

// Input either names a stored recruiter or carries the raw signals. With a
// recruiterId the stored row wins and the new score is written back.
type Input struct {
	UserID           string `json:"userId"`
	RecruiterID      string `json:"recruiterId"`
	DaysSinceContact *int   `json:"daysSinceContact"`
	PendingActions   int    `json:"pendingActions"`
	EngagementScore  int    `json:"engagementScore"`
	FitScore         int    `json:"fitScore"`
	HasResponded     bool   `json:"hasResponded"`
	Stage            string `json:"stage"`
}

type Output struct {
	RecruiterID      string `json:"recruiterId,omitempty"`
	PriorityScore    int    `json:"priorityScore"`
	PriorityLevel    string `json:"priorityLevel"`
	Stage            string `json:"stage"`
	StageColor       string `json:"stageColor"`
	DaysSinceContact int    `json:"daysSinceContact"`
	Persisted        bool   `json:"priorityPersisted"`
}
