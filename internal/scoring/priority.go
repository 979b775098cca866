package scoring

import (
	"math"
	"sort"
)

// researchDepthPlaceholder stands in for a research-depth signal that is
// not computed yet. It is kept fixed rather than redistributed across the
// other factors.
// TODO: read this from the recruiter's research completeness once the
// profile research checklist is persisted.
const researchDepthPlaceholder = 30.0

const (
	priorityDaysWeight      = 0.30
	priorityPendingWeight   = 0.25
	priorityPotentialWeight = 0.20
	priorityResearchWeight  = 0.15
	priorityResponseWeight  = 0.10
)

// PriorityInput is everything the follow-up ranker looks at. A negative
// DaysSinceContact means the recruiter was never contacted.
type PriorityInput struct {
	DaysSinceContact int           `json:"daysSinceContact"`
	PendingActions   int           `json:"pendingActions"`
	EngagementScore  int           `json:"engagementScore"`
	FitScore         int           `json:"fitScore"`
	HasResponded     bool          `json:"hasResponded"`
	Stage            PipelineStage `json:"stage"`
}

// ScorePriority returns the follow-up priority in [0,100].
func ScorePriority(in PriorityInput) int {
	potential := float64(clamp(in.EngagementScore, 0, 100)+clamp(in.FitScore, 0, 100)) / 2
	response := 30.0
	if in.HasResponded {
		response = 100
	}

	raw := float64(followUpDaysScore(in.DaysSinceContact))*priorityDaysWeight +
		float64(min(100, max(0, in.PendingActions)*25))*priorityPendingWeight +
		potential*priorityPotentialWeight +
		researchDepthPlaceholder*priorityResearchWeight +
		response*priorityResponseWeight

	return int(math.Min(100, raw*in.Stage.Multiplier()))
}

// followUpDaysScore peaks in the 5-7 day follow-up window.
func followUpDaysScore(days int) int {
	switch {
	case days < 0:
		return 0
	case days < 5:
		return 50
	case days <= 7:
		return 100
	case days <= 14:
		return 80
	default:
		return max(20, 100-3*(days-7))
	}
}

// PriorityLevel buckets a priority score for board color coding.
func PriorityLevel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
	}
}

// PipelineEntry is one recruiter card on a user's board.
type PipelineEntry struct {
	RecruiterID   string        `json:"recruiterId"`
	Stage         PipelineStage `json:"stage"`
	PriorityScore int           `json:"priorityScore"`
	DaysInStage   int           `json:"daysInStage"`
	Position      int           `json:"position"`
}

// RankFollowUps orders entries for follow-up recommendations: terminal
// stages are dropped, then highest priority first, longest waiting next.
func RankFollowUps(entries []PipelineEntry) []PipelineEntry {
	out := make([]PipelineEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Stage.Terminal() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PriorityScore != out[j].PriorityScore {
			return out[i].PriorityScore > out[j].PriorityScore
		}
		if out[i].DaysInStage != out[j].DaysInStage {
			return out[i].DaysInStage > out[j].DaysInStage
		}
		return out[i].RecruiterID < out[j].RecruiterID
	})
	return out
}
