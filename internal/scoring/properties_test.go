package scoring

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightTablesSumToHundred(t *testing.T) {
	for name, w := range map[string]Weights{
		"ats":        ATSWeights,
		"message":    MessageWeights,
		"engagement": EngagementWeights,
		"fit":        FitWeights,
		"readiness":  ReadinessWeights,
	} {
		assert.Equal(t, 100, w.Sum(), name)
	}
}

func assertReconstruction(t *testing.T, w Weights, r ScoreResult) {
	t.Helper()
	require.Len(t, r.Components, len(w))
	var sum float64
	for _, wt := range w {
		v, ok := r.Components[wt.Name]
		require.True(t, ok, "missing component %s", wt.Name)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
		sum += float64(v) * float64(wt.Value) / 100
	}
	assert.Equal(t, int(math.Round(sum)), r.Total)
	assert.LessOrEqual(t, len(r.Feedback), maxNotes)
	assert.LessOrEqual(t, len(r.Suggestions), maxNotes)
}

func TestReconstructionLaw(t *testing.T) {
	texts := []string{"", "x", strongResume, strongMessage, filler(500), "lol!! $5 10% 3x 1,000,000"}
	for i, text := range texts {
		t.Run(fmt.Sprintf("text-%d", i), func(t *testing.T) {
			assertReconstruction(t, ATSWeights, ScoreATS(ATSInput{Text: text, JobKeywords: []string{"go", "sql"}}).ScoreResult)
			for _, mt := range MessageTypes() {
				assertReconstruction(t, MessageWeights, ScoreMessage(MessageInput{Text: text, Type: mt}).ScoreResult)
			}
		})
	}

	for sent := 0; sent <= 20; sent += 5 {
		for responded := 0; responded <= sent; responded += 2 {
			m := EngagementMetrics{MessagesSent: sent, MessagesOpened: sent / 2, ResponsesReceived: responded, LastContact: daysAgo(sent)}
			assertReconstruction(t, EngagementWeights, ScoreEngagement(m, fixedNow))
		}
	}

	assertReconstruction(t, FitWeights, ScoreFit(UserFitProfile{Location: "Remote"}, RecruiterFitProfile{Specialty: "QA"}))

	for _, c := range []float64{0, 0.33, 0.5, 1, 2} {
		assertReconstruction(t, ReadinessWeights, ScoreReadiness(ReadinessInputs{
			ProfileCompleteness: c, HasResume: c > 0.4, ActiveRecruiters: int(c * 7), MessagesThisWeek: int(c * 4), ResponseRate: c / 5,
		}).ScoreResult)
	}
}

func TestIdempotence(t *testing.T) {
	atsIn := ATSInput{Text: strongResume, JobKeywords: []string{"go", "rust"}, TargetRole: "Staff Engineer"}
	assert.Equal(t, ScoreATS(atsIn), ScoreATS(atsIn))

	msgIn := MessageInput{Text: strongMessage, Type: MessageFollowUp, RecruiterName: "Sarah Chen"}
	assert.Equal(t, ScoreMessage(msgIn), ScoreMessage(msgIn))

	m := EngagementMetrics{MessagesSent: 7, MessagesOpened: 3, ResponsesReceived: 1, LastContact: daysAgo(9)}
	assert.Equal(t, ScoreEngagement(m, fixedNow), ScoreEngagement(m, fixedNow))

	pin := PriorityInput{DaysSinceContact: 9, PendingActions: 2, EngagementScore: 61, FitScore: 44, Stage: StageInterviewing}
	assert.Equal(t, ScorePriority(pin), ScorePriority(pin))

	rin := ReadinessInputs{ProfileCompleteness: 0.6, HasResume: true, ActiveRecruiters: 4, ResponseRate: 0.1}
	assert.Equal(t, ScoreReadiness(rin), ScoreReadiness(rin))
}

func TestConcurrentScoring(t *testing.T) {
	done := make(chan ATSResult, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- ScoreATS(ATSInput{Text: strongResume}) }()
	}
	first := <-done
	for i := 1; i < 8; i++ {
		assert.Equal(t, first, <-done)
	}
}
