package checkcareerreadiness

import (
	"context"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-career-readiness"
)

// Resume score sources reported in the output.
const (
	sourceProfile = "profile"
	sourceIndex   = "index"
	sourceNone    = "none"
)

type ProfileStore interface {
	store.SeekerSource
	store.ActivitySource
}

// LatestScores finds the newest indexed ATS score for a user.
type LatestScores interface {
	Latest(ctx context.Context, userID string) (*store.ResumeScoreDocument, error)
}

type Handler struct {
	config *Config
	repo   ProfileStore
	cache  *store.ScoreCache
	index  LatestScores
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

// NewHandler wires the readiness worker. cache and index may be nil.
func NewHandler(config *Config, repo ProfileStore, cache *store.ScoreCache, index LatestScores, deps camunda.JobDeps) *Handler {
	deps.Logger = deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		repo:   repo,
		cache:  cache,
		index:  index,
		deps:   deps,
		logger: deps.Logger,
		now:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Job[Input, Output]{
		TaskType: TaskType,
		Timeout:  h.config.Timeout,
		Deps:     h.deps,
		Execute:  h.Execute,
	}.Handle(client, job)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	seeker, err := h.cache.Seeker(ctx, input.UserID, h.repo)
	if err != nil {
		return nil, err
	}
	stats, err := h.cache.Activity(ctx, input.UserID, h.now().UTC(), h.repo)
	if err != nil {
		return nil, err
	}

	resumeScore, source := h.resumeScore(ctx, seeker)
	completeness := scoring.ProfileCompleteness(seeker.Profile.Fields())
	result := scoring.ScoreReadiness(scoring.ReadinessInputs{
		ProfileCompleteness: completeness,
		ResumeATSScore:      resumeScore,
		HasResume:           seeker.HasResume || resumeScore != nil,
		ActiveRecruiters:    stats.ActiveRecruiters,
		MessagesThisWeek:    stats.MessagesThisWeek,
		ResponseRate:        stats.ResponseRate,
		CareerStage:         seeker.CareerStage,
	})
	h.deps.ObserveScore(ctx, "readiness", result.Total)

	h.logger.Info("career readiness calculated", map[string]interface{}{
		"userId":       input.UserID,
		"score":        result.Total,
		"level":        result.Level,
		"completeness": completeness,
		"resumeSource": source,
	})

	return &Output{
		ReadinessScore:      result.Total,
		ReadinessLevel:      result.Level,
		Components:          result.Components,
		Feedback:            result.Feedback,
		ProfileCompleteness: completeness,
		ResumeScore:         resumeScore,
		ResumeScoreSource:   source,
		Recommendations:     result.Recommendations,
		NextActions:         result.NextActions,
	}, nil
}

// resumeScore prefers the score stored on the profile and falls back to the
// newest indexed result. Index errors degrade to no score.
func (h *Handler) resumeScore(ctx context.Context, seeker *store.Seeker) (*int, string) {
	if seeker.ResumeScore != nil {
		return seeker.ResumeScore, sourceProfile
	}
	if h.index == nil {
		return nil, sourceNone
	}
	doc, err := h.index.Latest(ctx, seeker.UserID)
	if err != nil {
		h.logger.Warn("resume score lookup failed", map[string]interface{}{
			"userId": seeker.UserID,
			"error":  err,
		})
		return nil, sourceNone
	}
	if doc == nil {
		return nil, sourceNone
	}
	score := doc.TotalScore
	return &score, sourceIndex
}
