package scoreoutreachmessage

import (
	"context"
	"strings"
	"testing"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const followUpDraft = `Hi Priya, thanks again for the call about the platform role at Northwind.
I noticed your team recently shipped the new billing service and I led a similar
migration that cut invoice errors by 40%. Would you be open to a 15 minute chat
next week to talk about next steps?`

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), scoring.English(), camunda.JobDeps{Logger: logger.NewTestLogger(t)})
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name        string
		input       *Input
		wantType    scoring.MessageType
		wantReady   bool
		checkOutput func(t *testing.T, output *Output)
	}{
		{
			name: "personalized follow-up",
			input: &Input{
				Text:          followUpDraft,
				MessageType:   "follow-up",
				RecruiterName: "Priya Raman",
				CompanyName:   "Northwind",
			},
			wantType:  scoring.MessageFollowUp,
			wantReady: true,
			checkOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.HasPersonalization)
				assert.True(t, output.HasMetrics)
				assert.True(t, output.HasCTA)
				assert.Contains(t, output.PersonalizationElements, "recruiter_name")
				assert.Contains(t, output.PersonalizationElements, "company_name")
			},
		},
		{
			name:      "unknown type falls back to initial outreach",
			input:     &Input{Text: "Hello, I am looking for a job.", MessageType: "cold-call"},
			wantType:  scoring.MessageInitialOutreach,
			wantReady: false,
			checkOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.HasPersonalization)
				assert.False(t, output.HasCTA)
				assert.NotEmpty(t, output.Suggestions)
			},
		},
		{
			name:      "empty message",
			input:     &Input{MessageType: "check_in"},
			wantType:  scoring.MessageCheckIn,
			wantReady: false,
			checkOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.WordCount)
			},
		},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			want := scoring.ScoreMessage(scoring.MessageInput{
				Text:          tt.input.Text,
				Type:          tt.wantType,
				RecruiterName: tt.input.RecruiterName,
				CompanyName:   tt.input.CompanyName,
			})
			assert.Equal(t, want.Total, output.MessageScore)
			assert.Equal(t, want.Components, output.Components)
			assert.Equal(t, string(tt.wantType), output.MessageType)
			assert.Equal(t, tt.wantReady, output.ReadyToSend)
			tt.checkOutput(t, output)
		})
	}
}

func TestHandler_Execute_ComponentsComplete(t *testing.T) {
	output, err := createTestHandler(t).Execute(context.Background(), &Input{Text: followUpDraft})
	require.NoError(t, err)

	for _, name := range scoring.MessageWeights.Names() {
		v, ok := output.Components[name]
		assert.True(t, ok, name)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
	assert.Equal(t, scoring.MessageWeights.Composite(output.Components), output.MessageScore)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	h := NewHandler(LoadConfig(), scoring.English(), camunda.JobDeps{Logger: logger.NewNoOpLogger()})
	input := &Input{Text: strings.Repeat(followUpDraft+" ", 2), RecruiterName: "Priya Raman"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(ctx, input)
	}
}
