package sendfollowupreminder

type Input struct {
	// BatchSize overrides the configured batch when positive.
	BatchSize int `json:"batchSize"`
	// DryRun lists due reminders without sending or marking them.
	DryRun bool `json:"dryRun"`
}

type Output struct {
	Candidates int      `json:"reminderCandidates"`
	Reminded   int      `json:"remindersDelivered"`
	EmailsSent int      `json:"reminderEmailsSent"`
	SMSSent    int      `json:"reminderSmsSent"`
	Failed     int      `json:"remindersFailed"`
	Skipped    int      `json:"remindersSkipped"`
	Recruiters []string `json:"remindedRecruiterIds"`
}
