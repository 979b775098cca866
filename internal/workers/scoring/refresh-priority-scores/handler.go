package refreshpriorityscores

import (
	"context"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/common/metrics"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "refresh-priority-scores"
)

type PipelineStore interface {
	RefreshPriorities(ctx context.Context, userID string, at time.Time, score func(store.Recruiter) int) (int, error)
}

type Handler struct {
	config *Config
	repo   PipelineStore
	cache  *store.ScoreCache
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, repo PipelineStore, cache *store.ScoreCache, deps camunda.JobDeps) *Handler {
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

// Execute recomputes every priority on the user's board. Concurrent
// refreshes for the same user are rejected with a retryable error rather
// than queued behind the row locks.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lock, err := h.cache.AcquireLock(ctx, store.RefreshLockKey(input.UserID), h.config.LockTTL)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		return nil, errors.NewRefreshInProgressError(input.UserID)
	}
	defer func() {
		if err := h.cache.ReleaseLock(context.WithoutCancel(ctx), lock); err != nil {
			h.logger.Warn("failed to release refresh lock", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
		}
	}()

	runID := uuid.NewString()
	now := h.now().UTC()
	log := h.logger.WithFields(map[string]interface{}{"userId": input.UserID, "runId": runID})

	var entries []scoring.PipelineEntry
	columns := make(map[scoring.PipelineStage]int)
	updated, err := h.repo.RefreshPriorities(ctx, input.UserID, now, func(rec store.Recruiter) int {
		score := scoring.ScorePriority(rec.PriorityInput(now))
		entries = append(entries, scoring.PipelineEntry{
			RecruiterID:   rec.ID,
			Stage:         rec.Stage,
			PriorityScore: score,
			DaysInStage:   rec.DaysInStage(now),
			Position:      columns[rec.Stage],
		})
		columns[rec.Stage]++
		return score
	})
	if err != nil {
		log.Error("priority refresh failed", map[string]interface{}{"error": err})
		return nil, err
	}
	metrics.PriorityScoresRefreshed.Add(float64(updated))

	// Readiness aggregates read the pipeline; drop them so the next check
	// sees the new board.
	if err := h.cache.Invalidate(ctx, store.ActivityKey(input.UserID)); err != nil {
		log.Warn("failed to invalidate activity cache", map[string]interface{}{"error": err})
	}

	top := scoring.RankFollowUps(entries)
	if len(top) > h.config.TopN {
		top = top[:h.config.TopN]
	}

	log.Info("priority scores refreshed", map[string]interface{}{
		"updated":   updated,
		"followUps": len(top),
	})
	return &Output{
		RunID:        runID,
		Updated:      updated,
		TopFollowUps: top,
		RefreshedAt:  now.Format(time.RFC3339),
	}, nil
}
