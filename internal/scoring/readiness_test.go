package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestScoreReadiness_StrongCandidate(t *testing.T) {
	result := ScoreReadiness(ReadinessInputs{
		ProfileCompleteness: 1.0,
		ResumeATSScore:      intPtr(90),
		HasResume:           true,
		ActiveRecruiters:    15,
		MessagesThisWeek:    7,
		ResponseRate:        0.35,
		CareerStage:         CareerMid,
	})

	assert.Equal(t, 100, result.Components[ReadinessProfile])
	assert.Equal(t, 90, result.Components[ReadinessResume])
	assert.Equal(t, 100, result.Components[ReadinessNetwork])
	assert.Equal(t, 100, result.Components[ReadinessActivity])
	assert.Equal(t, 93, result.Components[ReadinessResponse])
	assert.Equal(t, 96, result.Total)
	assert.GreaterOrEqual(t, result.Total, 70)
	assert.Equal(t, "ready", result.Level)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.NextActions)
}

func TestScoreReadiness_NewUser(t *testing.T) {
	result := ScoreReadiness(ReadinessInputs{ProfileCompleteness: 0.2, CareerStage: CareerEntry})

	assert.Equal(t, 20, result.Components[ReadinessProfile])
	assert.Equal(t, 0, result.Components[ReadinessResume])
	assert.Equal(t, 0, result.Components[ReadinessNetwork])
	assert.Equal(t, 0, result.Components[ReadinessActivity])
	assert.Equal(t, 20, result.Components[ReadinessResponse])
	assert.Equal(t, 8, result.Total)
	assert.Less(t, result.Total, 30)
	assert.Equal(t, "getting_started", result.Level)

	require.Len(t, result.Recommendations, 5)
	assert.Equal(t, "Upload a resume to unlock recruiter matching", result.Recommendations[0])
	assert.Equal(t, "Complete your profile so recruiters can match you", result.Recommendations[1])
	require.Len(t, result.NextActions, maxNextActions)
	assert.Equal(t, "Upload your resume", result.NextActions[0])
}

func TestScoreReadiness_ResumeComponent(t *testing.T) {
	assert.Equal(t, 0, resumeReadiness(ReadinessInputs{ResumeATSScore: intPtr(80)}))
	assert.Equal(t, 40, resumeReadiness(ReadinessInputs{HasResume: true}))
	assert.Equal(t, 72, resumeReadiness(ReadinessInputs{HasResume: true, ResumeATSScore: intPtr(72)}))
	assert.Equal(t, 100, resumeReadiness(ReadinessInputs{HasResume: true, ResumeATSScore: intPtr(140)}))
}

func TestNetworkReadiness(t *testing.T) {
	tests := []struct {
		active   int
		expected int
	}{
		{-2, 0}, {0, 0}, {1, 17}, {2, 33}, {3, 50}, {5, 64}, {9, 93}, {10, 100}, {25, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, networkReadiness(tt.active), "active=%d", tt.active)
	}
}

func TestResponseReadiness(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		stage    CareerStage
		expected int
	}{
		{"zero responses", 0, CareerMid, 20},
		{"at benchmark", 0.25, CareerMid, 67},
		{"capped at one and a half", 0.9, CareerSenior, 100},
		{"entry benchmark", 0.15, CareerEntry, 100},
		{"executive benchmark", 0.15, CareerExecutive, 67},
		{"unknown stage uses mid", 0.25, CareerStage("student"), 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, responseReadiness(tt.rate, tt.stage))
		})
	}
}

func TestParseCareerStage(t *testing.T) {
	assert.Equal(t, CareerSenior, ParseCareerStage("Senior"))
	assert.Equal(t, CareerMid, ParseCareerStage("unknown"))
	assert.InDelta(t, 0.18, ParseCareerStage("early").Benchmark(), 1e-9)
}

func TestProfileCompleteness(t *testing.T) {
	assert.Equal(t, 0.0, ProfileCompleteness(nil))

	full := SeekerProfile{
		FullName: "Jane Doe", Email: "jane@example.com", CurrentTitle: "Engineer",
		TargetRoles: []string{"Staff Engineer"}, Location: "Austin, TX", Industries: []string{"fintech"},
		YearsExperience: 8, LinkedInURL: "https://linkedin.com/in/jane", SalaryExpectation: 180000,
		Bio: "Builder", Skills: []string{"go"}, Phone: "555-123-4567", PortfolioURL: "https://jane.dev",
	}
	assert.Equal(t, 1.0, ProfileCompleteness(full.Fields()))

	requiredOnly := SeekerProfile{
		FullName: "Jane Doe", Email: "jane@example.com", CurrentTitle: "Engineer",
		TargetRoles: []string{"Staff Engineer"},
	}
	assert.InDelta(t, 12.0/26.0, ProfileCompleteness(requiredOnly.Fields()), 1e-9)

	weighted := []ProfileField{
		{"a", FieldRequired, true},
		{"b", FieldImportant, false},
		{"c", FieldRecommended, true},
	}
	assert.InDelta(t, 4.0/6.0, ProfileCompleteness(weighted), 1e-9)
}
