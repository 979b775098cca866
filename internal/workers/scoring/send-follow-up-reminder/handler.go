package sendfollowupreminder

import (
	"context"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/common/metrics"
	"jobezie-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-follow-up-reminder"
)

type ReminderStore interface {
	ListReminderCandidates(ctx context.Context, cutoff time.Time, limit int) ([]store.ReminderCandidate, error)
	MarkReminded(ctx context.Context, recruiterID string, at time.Time) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config *Config
	repo   ReminderStore
	cache  *store.ScoreCache
	email  EmailSender
	sms    SMSSender
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

// NewHandler wires the reminder worker. A nil sender disables its channel;
// a nil cache disables per-recruiter send locks.
func NewHandler(config *Config, repo ReminderStore, cache *store.ScoreCache, email EmailSender, sms SMSSender, deps camunda.JobDeps) *Handler {
	deps.Logger = deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		repo:   repo,
		cache:  cache,
		email:  email,
		sms:    sms,
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
	now := h.now().UTC()
	batch := h.config.BatchSize
	if input.BatchSize > 0 {
		batch = input.BatchSize
	}
	cutoff := now.AddDate(0, 0, -h.config.AfterDays)

	candidates, err := h.repo.ListReminderCandidates(ctx, cutoff, batch)
	if err != nil {
		return nil, err
	}
	output := &Output{Candidates: len(candidates), Recruiters: []string{}}
	if input.DryRun {
		for _, c := range candidates {
			output.Recruiters = append(output.Recruiters, c.RecruiterID)
		}
		return output, nil
	}

	var lastErr error
	for _, c := range candidates {
		if ctx.Err() != nil {
			break
		}
		delivered, err := h.remind(ctx, c, now, output)
		switch {
		case err != nil:
			output.Failed++
			lastErr = err
			h.logger.Error("follow-up reminder failed", map[string]interface{}{
				"recruiterId": c.RecruiterID,
				"userId":      c.UserID,
				"error":       err,
			})
		case delivered:
			output.Reminded++
			output.Recruiters = append(output.Recruiters, c.RecruiterID)
		default:
			output.Skipped++
		}
	}

	h.logger.Info("follow-up reminders processed", map[string]interface{}{
		"candidates": output.Candidates,
		"reminded":   output.Reminded,
		"failed":     output.Failed,
		"skipped":    output.Skipped,
	})

	if output.Failed > 0 && output.Reminded == 0 {
		return nil, errors.NewNotificationSendFailedError("all", lastErr).
			WithMetadata("failed", output.Failed)
	}
	return output, nil
}

// remind delivers one reminder on every enabled channel. It reports false
// without error when the candidate had no reachable channel or another job
// holds its lock.
func (h *Handler) remind(ctx context.Context, c store.ReminderCandidate, now time.Time, output *Output) (bool, error) {
	if h.cache != nil {
		lock, err := h.cache.AcquireLock(ctx, store.ReminderLockKey(c.RecruiterID), h.config.LockTTL)
		if err != nil {
			return false, err
		}
		if lock == nil {
			return false, nil
		}
		defer func() { _ = h.cache.ReleaseLock(context.WithoutCancel(ctx), lock) }()
	}

	msg, err := buildReminder(c, now)
	if err != nil {
		return false, errors.NewInternalError(err)
	}

	var (
		sent    bool
		sendErr error
	)
	if h.config.EmailEnabled && h.email != nil && c.SeekerEmail != "" {
		if _, err := h.email.SendEmail(ctx, c.SeekerEmail, msg.Subject, msg.Email); err != nil {
			sendErr = errors.NewNotificationSendFailedError("email", err)
		} else {
			sent = true
			output.EmailsSent++
			metrics.RemindersSent.WithLabelValues("email").Inc()
		}
	}
	if h.config.SMSEnabled && h.sms != nil && c.SeekerPhone != "" && c.PriorityScore >= h.config.SMSPriorityThreshold {
		if _, err := h.sms.SendSMS(ctx, c.SeekerPhone, msg.SMS); err != nil {
			sendErr = errors.NewNotificationSendFailedError("sms", err)
		} else {
			sent = true
			output.SMSSent++
			metrics.RemindersSent.WithLabelValues("sms").Inc()
		}
	}

	if !sent {
		return false, sendErr
	}
	// The reminder is out; a failed mark only risks one duplicate next run.
	if err := h.repo.MarkReminded(ctx, c.RecruiterID, now); err != nil {
		h.logger.Warn("reminder sent but not recorded", map[string]interface{}{
			"recruiterId": c.RecruiterID,
			"error":       err,
		})
	}
	return true, nil
}
