package checkcareerreadiness

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
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

const (
	selectSeeker   = `SELECT user_id, full_name, .* FROM seeker_profiles WHERE user_id = \$1`
	selectPipeline = `SELECT COUNT\(\*\) FILTER .* FROM recruiters WHERE user_id = \$1`
	selectWeek     = `SELECT COUNT\(\*\) FROM outreach_messages WHERE user_id = \$1 AND sent_at >= \$2`
)

type fakeLatest struct {
	doc   *store.ResumeScoreDocument
	err   error
	calls int
}

func (f *fakeLatest) Latest(_ context.Context, _ string) (*store.ResumeScoreDocument, error) {
	f.calls++
	return f.doc, f.err
}

func testSeeker(resumeScore *int) store.Seeker {
	return store.Seeker{
		UserID: "user-1",
		Profile: scoring.SeekerProfile{
			FullName:          "Alex Kim",
			Email:             "alex@example.com",
			CurrentTitle:      "Software Engineer",
			TargetRoles:       []string{"Senior Software Engineer"},
			Location:          "Austin, TX",
			Industries:        []string{"fintech"},
			YearsExperience:   6,
			LinkedInURL:       "https://linkedin.com/in/alexkim",
			SalaryExpectation: 150000,
		},
		CareerStage: scoring.CareerMid,
		HasResume:   resumeScore != nil,
		ResumeScore: resumeScore,
	}
}

func expectStats(mock sqlmock.Sqlmock, active, sent, responses, week int64) {
	mock.ExpectQuery(selectPipeline).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"active", "sent", "responses"}).AddRow(active, sent, responses))
	mock.ExpectQuery(selectWeek).WithArgs("user-1", fixedNow.Add(-7*24*time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(week))
}

func createTestHandler(t *testing.T, index LatestScores) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	repo, mock := storetest.NewRepo(t)
	cache, mr := storetest.NewCache(t)
	h := NewHandler(LoadConfig(), repo, cache, index, camunda.JobDeps{Logger: logger.NewTestLogger(t)})
	h.now = func() time.Time { return fixedNow }
	return h, mock, mr
}

func intPtr(v int) *int { return &v }

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ProfileResumeScore(t *testing.T) {
	index := &fakeLatest{}
	h, mock, mr := createTestHandler(t, index)
	seeker := testSeeker(intPtr(82))

	mock.ExpectQuery(selectSeeker).WithArgs("user-1").WillReturnRows(storetest.SeekerRows(seeker))
	expectStats(mock, 8, 40, 10, 4)

	output, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	completeness := scoring.ProfileCompleteness(seeker.Profile.Fields())
	want := scoring.ScoreReadiness(scoring.ReadinessInputs{
		ProfileCompleteness: completeness,
		ResumeATSScore:      intPtr(82),
		HasResume:           true,
		ActiveRecruiters:    8,
		MessagesThisWeek:    4,
		ResponseRate:        0.25,
		CareerStage:         scoring.CareerMid,
	})
	assert.Equal(t, want.Total, output.ReadinessScore)
	assert.Equal(t, want.Level, output.ReadinessLevel)
	assert.Equal(t, want.Components, output.Components)
	assert.InDelta(t, completeness, output.ProfileCompleteness, 1e-9)
	assert.Equal(t, 82, *output.ResumeScore)
	assert.Equal(t, "profile", output.ResumeScoreSource)
	assert.Equal(t, 0, index.calls)

	assert.True(t, mr.Exists(store.SeekerKey("user-1")))
	assert.True(t, mr.Exists(store.ActivityKey("user-1")))
}

func TestHandler_Execute_CachedInputs(t *testing.T) {
	h, mock, _ := createTestHandler(t, nil)
	ctx := context.Background()
	require.NoError(t, h.cache.SetJSON(ctx, store.SeekerKey("user-1"), testSeeker(intPtr(70))))
	require.NoError(t, h.cache.SetJSON(ctx, store.ActivityKey("user-1"), store.ActivityStats{ActiveRecruiters: 10}))

	output, err := h.Execute(ctx, &Input{UserID: "user-1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 100, output.Components[scoring.ReadinessNetwork])
}

func TestHandler_Execute_ResumeScoreFromIndex(t *testing.T) {
	index := &fakeLatest{doc: &store.ResumeScoreDocument{UserID: "user-1", TotalScore: 64}}
	h, mock, _ := createTestHandler(t, index)
	seeker := testSeeker(nil)

	mock.ExpectQuery(selectSeeker).WithArgs("user-1").WillReturnRows(storetest.SeekerRows(seeker))
	expectStats(mock, 0, 0, 0, 0)

	output, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, "index", output.ResumeScoreSource)
	assert.Equal(t, 64, *output.ResumeScore)
	assert.Equal(t, 64, output.Components[scoring.ReadinessResume])
}

func TestHandler_Execute_IndexFailureDegrades(t *testing.T) {
	index := &fakeLatest{err: fmt.Errorf("index unavailable")}
	h, mock, _ := createTestHandler(t, index)

	mock.ExpectQuery(selectSeeker).WithArgs("user-1").WillReturnRows(storetest.SeekerRows(testSeeker(nil)))
	expectStats(mock, 2, 5, 0, 1)

	output, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	require.NoError(t, err)

	assert.Nil(t, output.ResumeScore)
	assert.Equal(t, "none", output.ResumeScoreSource)
	assert.Equal(t, 0, output.Components[scoring.ReadinessResume])
	assert.NotEmpty(t, output.NextActions)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_ProfileNotFound(t *testing.T) {
	h, mock, mr := createTestHandler(t, nil)
	mock.ExpectQuery(selectSeeker).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(store.SeekerColumns))

	output, err := h.Execute(context.Background(), &Input{UserID: "ghost"})
	assert.Nil(t, output)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeProfileNotFound, stdErr.Code)
	assert.False(t, mr.Exists(store.SeekerKey("ghost")))
}

func TestHandler_Execute_StatsQueryFails(t *testing.T) {
	h, mock, _ := createTestHandler(t, nil)
	mock.ExpectQuery(selectSeeker).WithArgs("user-1").WillReturnRows(storetest.SeekerRows(testSeeker(nil)))
	mock.ExpectQuery(selectPipeline).WillReturnError(fmt.Errorf("relation does not exist"))

	_, err := h.Execute(context.Background(), &Input{UserID: "user-1"})
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
}
