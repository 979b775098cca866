// Package storetest builds sqlmock and miniredis backed stores for handler
// tests.
package storetest

import (
	"database/sql/driver"
	"testing"
	"time"

	"jobezie-workers/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// ReminderColumns is the column order of ListReminderCandidates.
var ReminderColumns = []string{
	"id", "full_name", "company_name", "user_id", "s_full_name", "email",
	"phone", "stage", "priority_score", "last_contact_at",
}

func NewRepo(t testing.TB) (*store.RecruiterRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewRecruiterRepository(db), mock
}

func NewCache(t testing.TB) (*store.ScoreCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return store.NewScoreCache(client, 10*time.Minute), mr
}

// RecruiterRows renders recruiters the way Postgres returns them.
func RecruiterRows(recs ...store.Recruiter) *sqlmock.Rows {
	rows := sqlmock.NewRows(store.RecruiterColumns)
	for _, r := range recs {
		var lastContact driver.Value
		if r.LastContactAt != nil {
			lastContact = *r.LastContactAt
		}
		rows.AddRow(
			r.ID, r.UserID, r.FullName, r.CompanyName,
			array(r.Industries), array(r.Locations),
			r.Specialty, r.CompanyType, int64(r.SalaryMin), int64(r.SalaryMax), string(r.Stage),
			r.StageChangedAt, int64(r.MessagesSent), int64(r.MessagesOpened), int64(r.ResponsesReceived),
			lastContact, int64(r.PendingActions), int64(r.EngagementScore), int64(r.FitScore), int64(r.PriorityScore),
		)
	}
	return rows
}

func SeekerRows(s store.Seeker) *sqlmock.Rows {
	p := s.Profile
	var resume driver.Value
	if s.ResumeScore != nil {
		resume = int64(*s.ResumeScore)
	}
	return sqlmock.NewRows(store.SeekerColumns).AddRow(
		s.UserID, p.FullName, p.Email, p.CurrentTitle, array(p.TargetRoles), p.Location,
		array(p.Industries), int64(p.YearsExperience), p.LinkedInURL, int64(p.SalaryExpectation), p.Bio,
		array(p.Skills), p.Phone, p.PortfolioURL, string(s.CareerStage), s.HasResume, resume,
	)
}

func ReminderRows(cands ...store.ReminderCandidate) *sqlmock.Rows {
	rows := sqlmock.NewRows(ReminderColumns)
	for _, c := range cands {
		rows.AddRow(
			c.RecruiterID, c.RecruiterName, c.CompanyName, c.UserID,
			c.SeekerName, c.SeekerEmail, c.SeekerPhone,
			string(c.Stage), int64(c.PriorityScore), c.LastContactAt,
		)
	}
	return rows
}

func array(values []string) driver.Value {
	if values == nil {
		return "{}"
	}
	v, _ := pq.StringArray(values).Value()
	return v
}
