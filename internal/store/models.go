package store

import (
	"time"

	"jobezie-workers/internal/scoring"
)

// Recruiter is one row of a job seeker's recruiter pipeline.
type Recruiter struct {
	ID                string
	UserID            string
	FullName          string
	CompanyName       string
	Industries        []string
	Locations         []string
	Specialty         string
	CompanyType       string
	SalaryMin         int
	SalaryMax         int
	Stage             scoring.PipelineStage
	StageChangedAt    time.Time
	MessagesSent      int
	MessagesOpened    int
	ResponsesReceived int
	LastContactAt     *time.Time
	PendingActions    int
	EngagementScore   int
	FitScore          int
	PriorityScore     int
}

func (r Recruiter) Engagement() scoring.EngagementMetrics {
	return scoring.EngagementMetrics{
		MessagesSent:      r.MessagesSent,
		MessagesOpened:    r.MessagesOpened,
		ResponsesReceived: r.ResponsesReceived,
		LastContact:       r.LastContactAt,
	}
}

func (r Recruiter) FitProfile() scoring.RecruiterFitProfile {
	return scoring.RecruiterFitProfile{
		Industries:  r.Industries,
		Locations:   r.Locations,
		Specialty:   r.Specialty,
		CompanyType: r.CompanyType,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
	}
}

// PriorityInput uses the stored engagement and fit scores; they are
// refreshed by the engagement worker.
func (r Recruiter) PriorityInput(now time.Time) scoring.PriorityInput {
	return scoring.PriorityInput{
		DaysSinceContact: scoring.DaysSince(r.LastContactAt, now),
		PendingActions:   r.PendingActions,
		EngagementScore:  r.EngagementScore,
		FitScore:         r.FitScore,
		HasResponded:     r.ResponsesReceived > 0,
		Stage:            r.Stage,
	}
}

// DaysInStage is the whole number of days since the last stage change.
func (r Recruiter) DaysInStage(now time.Time) int {
	if r.StageChangedAt.IsZero() || now.Before(r.StageChangedAt) {
		return 0
	}
	return int(now.Sub(r.StageChangedAt).Hours() / 24)
}

// Seeker is a job seeker's stored profile.
type Seeker struct {
	UserID      string                `json:"userId"`
	Profile     scoring.SeekerProfile `json:"profile"`
	CareerStage scoring.CareerStage   `json:"careerStage"`
	HasResume   bool                  `json:"hasResume"`
	ResumeScore *int                  `json:"resumeScore,omitempty"`
}

func (s Seeker) FitProfile() scoring.UserFitProfile {
	return scoring.UserFitProfile{
		Industries:        s.Profile.Industries,
		Location:          s.Profile.Location,
		TargetRoles:       s.Profile.TargetRoles,
		SalaryExpectation: s.Profile.SalaryExpectation,
	}
}

// ActivityStats are the outreach aggregates behind readiness.
type ActivityStats struct {
	ActiveRecruiters  int     `json:"activeRecruiters"`
	MessagesThisWeek  int     `json:"messagesThisWeek"`
	MessagesSent      int     `json:"messagesSent"`
	ResponsesReceived int     `json:"responsesReceived"`
	ResponseRate      float64 `json:"responseRate"`
}

// ReminderCandidate is a recruiter whose follow-up is due, with the owning
// seeker's contact details.
type ReminderCandidate struct {
	RecruiterID   string
	RecruiterName string
	CompanyName   string
	UserID        string
	SeekerName    string
	SeekerEmail   string
	SeekerPhone   string
	Stage         scoring.PipelineStage
	PriorityScore int
	LastContactAt time.Time
}
