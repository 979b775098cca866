package calculatefollowuppriority

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"
	"jobezie-workers/internal/store/storetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

const (
	selectRecruiter = `SELECT id, user_id, .* FROM recruiters WHERE id = \$1`
	updatePriority  = `UPDATE recruiters SET priority_score = \$1, scores_updated_at = \$2 WHERE id = \$3`
)

func intPtr(v int) *int { return &v }

func testRecruiter(daysAgo int, stage scoring.PipelineStage) store.Recruiter {
	last := fixedNow.Add(-time.Duration(daysAgo) * 24 * time.Hour)
	return store.Recruiter{
		ID:                "rec-1",
		UserID:            "user-1",
		FullName:          "Dana Cole",
		Stage:             stage,
		StageChangedAt:    fixedNow.Add(-10 * 24 * time.Hour),
		MessagesSent:      4,
		ResponsesReceived: 1,
		LastContactAt:     &last,
		PendingActions:    2,
		EngagementScore:   70,
		FitScore:          80,
		PriorityScore:     12,
	}
}

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	repo, mock := storetest.NewRepo(t)
	h := NewHandler(LoadConfig(), repo, camunda.JobDeps{Logger: logger.NewTestLogger(t)})
	h.now = func() time.Time { return fixedNow }
	return h, mock
}

// ==========================
// Stored Recruiter Tests
// ==========================

func TestHandler_Execute_StoredRecruiter(t *testing.T) {
	h, mock := createTestHandler(t)
	rec := testRecruiter(6, scoring.StageResponded)
	want := scoring.ScorePriority(rec.PriorityInput(fixedNow))

	mock.ExpectQuery(selectRecruiter).WithArgs("rec-1").WillReturnRows(storetest.RecruiterRows(rec))
	mock.ExpectExec(updatePriority).WithArgs(want, fixedNow, "rec-1").WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), &Input{UserID: "user-1", RecruiterID: "rec-1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, want, output.PriorityScore)
	assert.Equal(t, scoring.PriorityLevel(want), output.PriorityLevel)
	assert.Equal(t, "responded", output.Stage)
	assert.Equal(t, "green", output.StageColor)
	assert.Equal(t, 6, output.DaysSinceContact)
	assert.True(t, output.Persisted)
	assert.Equal(t, "rec-1", output.RecruiterID)
}

func TestHandler_Execute_StoredRecruiterErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		h, mock := createTestHandler(t)
		mock.ExpectQuery(selectRecruiter).WithArgs("rec-9").
			WillReturnRows(sqlmock.NewRows(store.RecruiterColumns))

		_, err := h.Execute(context.Background(), &Input{RecruiterID: "rec-9"})
		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeRecruiterNotFound, stdErr.Code)
	})

	t.Run("update fails", func(t *testing.T) {
		h, mock := createTestHandler(t)
		mock.ExpectQuery(selectRecruiter).WithArgs("rec-1").
			WillReturnRows(storetest.RecruiterRows(testRecruiter(3, scoring.StageContacted)))
		mock.ExpectExec(updatePriority).WillReturnError(fmt.Errorf("deadlock detected"))

		_, err := h.Execute(context.Background(), &Input{RecruiterID: "rec-1"})
		stdErr, ok := errors.AsStandardError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeDatabaseUpdateFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
	})
}

// ==========================
// Raw Signal Tests
// ==========================

func TestHandler_Execute_Signals(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantStage scoring.PipelineStage
		wantDays  int
	}{
		{
			name: "optimal follow-up window",
			input: &Input{
				DaysSinceContact: intPtr(6), PendingActions: 1,
				EngagementScore: 80, FitScore: 60, HasResponded: true, Stage: "Responded",
			},
			wantStage: scoring.StageResponded,
			wantDays:  6,
		},
		{
			name:      "never contacted",
			input:     &Input{Stage: "new", EngagementScore: 40, FitScore: 40},
			wantStage: scoring.StageNew,
			wantDays:  -1,
		},
		{
			name:      "unknown stage is neutral",
			input:     &Input{DaysSinceContact: intPtr(10), Stage: "ghosted"},
			wantStage: scoring.PipelineStage("ghosted"),
			wantDays:  10,
		},
	}

	h, _ := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			want := scoring.ScorePriority(scoring.PriorityInput{
				DaysSinceContact: tt.wantDays,
				PendingActions:   tt.input.PendingActions,
				EngagementScore:  tt.input.EngagementScore,
				FitScore:         tt.input.FitScore,
				HasResponded:     tt.input.HasResponded,
				Stage:            tt.wantStage,
			})
			assert.Equal(t, want, output.PriorityScore)
			assert.Equal(t, string(tt.wantStage), output.Stage)
			assert.Equal(t, tt.wantDays, output.DaysSinceContact)
			assert.False(t, output.Persisted)
		})
	}
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute_Signals(b *testing.B) {
	h := NewHandler(LoadConfig(), nil, camunda.JobDeps{Logger: logger.NewNoOpLogger()})
	input := &Input{DaysSinceContact: intPtr(6), PendingActions: 2, EngagementScore: 70, FitScore: 75, Stage: "contacted"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Execute(ctx, input)
	}
}
