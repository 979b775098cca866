package scorerecruiterengagement

import (
	"context"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-recruiter-engagement"
)

type RecruiterStore interface {
	store.SeekerSource
	GetRecruiter(ctx context.Context, recruiterID string) (*store.Recruiter, error)
	UpdateRelationshipScores(ctx context.Context, recruiterID string, engagement, fit int, at time.Time) error
}

type Handler struct {
	config *Config
	repo   RecruiterStore
	cache  *store.ScoreCache
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

// NewHandler wires the engagement worker. cache may be nil.
func NewHandler(config *Config, repo RecruiterStore, cache *store.ScoreCache, deps camunda.JobDeps) *Handler {
	deps.Logger = deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		repo:   repo,
		cache:  cache,
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
	rec, err := h.repo.GetRecruiter(ctx, input.RecruiterID)
	if err != nil {
		return nil, err
	}
	if input.UserID != "" && rec.UserID != input.UserID {
		return nil, errors.NewRecruiterNotFoundError(input.RecruiterID).WithMetadata("userId", input.UserID)
	}

	seeker, err := h.cache.Seeker(ctx, rec.UserID, h.repo)
	if err != nil {
		return nil, err
	}

	now := h.now().UTC()
	engagement := scoring.ScoreEngagement(rec.Engagement(), now)
	fit := scoring.ScoreFit(seeker.FitProfile(), rec.FitProfile())
	h.deps.ObserveScore(ctx, "engagement", engagement.Total)
	h.deps.ObserveScore(ctx, "fit", fit.Total)

	output := &Output{
		RecruiterID:          rec.ID,
		EngagementScore:      engagement.Total,
		EngagementComponents: engagement.Components,
		EngagementFeedback:   engagement.Feedback,
		FitScore:             fit.Total,
		FitComponents:        fit.Components,
		FitFeedback:          fit.Feedback,
		Suggestions:          append(append([]string{}, engagement.Suggestions...), fit.Suggestions...),
		DaysSinceContact:     scoring.DaysSince(rec.LastContactAt, now),
		Stage:                string(rec.Stage),
	}

	if h.config.Persist {
		if err := h.repo.UpdateRelationshipScores(ctx, rec.ID, engagement.Total, fit.Total, now); err != nil {
			return nil, err
		}
		output.Persisted = true
	}

	h.logger.Info("recruiter relationship scored", map[string]interface{}{
		"userId":      rec.UserID,
		"recruiterId": rec.ID,
		"engagement":  engagement.Total,
		"fit":         fit.Total,
		"persisted":   output.Persisted,
	})
	return output, nil
}
