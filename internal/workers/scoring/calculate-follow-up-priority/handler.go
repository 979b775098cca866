package calculatefollowuppriority

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
	TaskType = "calculate-follow-up-priority"
)

type RecruiterStore interface {
	GetRecruiter(ctx context.Context, recruiterID string) (*store.Recruiter, error)
	UpdatePriorityScore(ctx context.Context, recruiterID string, score int, at time.Time) error
}

type Handler struct {
	config *Config
	repo   RecruiterStore
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, repo RecruiterStore, deps camunda.JobDeps) *Handler {
	deps.Logger = deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		repo:   repo,
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
	if input.RecruiterID == "" {
		return h.fromSignals(ctx, input)
	}

	rec, err := h.repo.GetRecruiter(ctx, input.RecruiterID)
	if err != nil {
		return nil, err
	}
	if input.UserID != "" && rec.UserID != input.UserID {
		return nil, errors.NewRecruiterNotFoundError(input.RecruiterID).WithMetadata("userId", input.UserID)
	}

	now := h.now().UTC()
	in := rec.PriorityInput(now)
	score := scoring.ScorePriority(in)
	h.deps.ObserveScore(ctx, "priority", score)

	if err := h.repo.UpdatePriorityScore(ctx, rec.ID, score, now); err != nil {
		return nil, err
	}

	h.logger.Info("follow-up priority updated", map[string]interface{}{
		"userId":      rec.UserID,
		"recruiterId": rec.ID,
		"stage":       rec.Stage,
		"previous":    rec.PriorityScore,
		"priority":    score,
	})

	output := newOutput(in, score)
	output.RecruiterID = rec.ID
	output.Persisted = true
	return output, nil
}

func (h *Handler) fromSignals(ctx context.Context, input *Input) (*Output, error) {
	stage, ok := scoring.ParsePipelineStage(input.Stage)
	if !ok {
		h.logger.Warn("unknown pipeline stage, scoring without multiplier", map[string]interface{}{
			"stage": input.Stage,
		})
	}
	days := -1
	if input.DaysSinceContact != nil {
		days = *input.DaysSinceContact
	}

	in := scoring.PriorityInput{
		DaysSinceContact: days,
		PendingActions:   input.PendingActions,
		EngagementScore:  input.EngagementScore,
		FitScore:         input.FitScore,
		HasResponded:     input.HasResponded,
		Stage:            stage,
	}
	score := scoring.ScorePriority(in)
	h.deps.ObserveScore(ctx, "priority", score)
	return newOutput(in, score), nil
}

func newOutput(in scoring.PriorityInput, score int) *Output {
	return &Output{
		PriorityScore:    score,
		PriorityLevel:    scoring.PriorityLevel(score),
		Stage:            string(in.Stage),
		StageColor:       in.Stage.Color(),
		DaysSinceContact: in.DaysSinceContact,
	}
}
