package main

import (
	"time"

	"jobezie-workers/internal/common/aws"
	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/config"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"
	"jobezie-workers/pkg/registry"

	calculatefollowuppriority "jobezie-workers/internal/workers/scoring/calculate-follow-up-priority"
	checkcareerreadiness "jobezie-workers/internal/workers/scoring/check-career-readiness"
	refreshpriorityscores "jobezie-workers/internal/workers/scoring/refresh-priority-scores"
	scoreoutreachmessage "jobezie-workers/internal/workers/scoring/score-outreach-message"
	scorerecruiterengagement "jobezie-workers/internal/workers/scoring/score-recruiter-engagement"
	scoreresumeats "jobezie-workers/internal/workers/scoring/score-resume-ats"
	sendfollowupreminder "jobezie-workers/internal/workers/scoring/send-follow-up-reminder"
)

type workerDeps struct {
	cfg      *config.Config
	registry *registry.ActivityRegistry
	lang     scoring.LanguagePack
	repo     *store.RecruiterRepository
	cache    *store.ScoreCache
	index    *store.ScoreIndex
	email    *aws.SESClient
	sms      *aws.SNSClient
	job      camunda.JobDeps
}

// timeout resolves a handler timeout: worker config first, then the
// activity registry, then the package default.
func (d workerDeps) timeout(taskType string, fallback time.Duration) time.Duration {
	if wc, ok := d.cfg.Workers[taskType]; ok && wc.Timeout > 0 {
		return config.GetDuration(wc.Timeout)
	}
	if d.registry != nil {
		if a, ok := d.registry.Find(taskType); ok {
			return a.TimeoutDuration(fallback)
		}
	}
	return fallback
}

func (d workerDeps) worker(taskType string) config.WorkerConfig {
	return config.GetWorkerConfig(d.cfg, taskType)
}

// The optional backends are passed as interfaces only when present so a
// disabled backend arrives as a true nil.

func (d workerDeps) atsIndex() scoreresumeats.ScoreIndexer {
	if d.index == nil {
		return nil
	}
	return d.index
}

func (d workerDeps) latestScores() checkcareerreadiness.LatestScores {
	if d.index == nil {
		return nil
	}
	return d.index
}

func (d workerDeps) emailSender() sendfollowupreminder.EmailSender {
	if d.email == nil {
		return nil
	}
	return d.email
}

func (d workerDeps) smsSender() sendfollowupreminder.SMSSender {
	if d.sms == nil {
		return nil
	}
	return d.sms
}

// startWorkers opens a job worker for every enabled scoring task type and
// returns how many were started.
func startWorkers(group *camunda.WorkerGroup, d workerDeps) int {
	started := 0
	start := func(taskType string, h camunda.JobHandler) {
		if group.Start(taskType, d.worker(taskType), h) {
			started++
		}
	}

	{
		cfg := scoreresumeats.LoadConfig()
		cfg.Timeout = d.timeout(scoreresumeats.TaskType, cfg.Timeout)
		start(scoreresumeats.TaskType, scoreresumeats.NewHandler(cfg, d.lang, d.atsIndex(), d.job))
	}
	{
		cfg := scoreoutreachmessage.LoadConfig()
		cfg.Timeout = d.timeout(scoreoutreachmessage.TaskType, cfg.Timeout)
		start(scoreoutreachmessage.TaskType, scoreoutreachmessage.NewHandler(cfg, d.lang, d.job))
	}
	{
		cfg := scorerecruiterengagement.LoadConfig()
		cfg.Timeout = d.timeout(scorerecruiterengagement.TaskType, cfg.Timeout)
		start(scorerecruiterengagement.TaskType, scorerecruiterengagement.NewHandler(cfg, d.repo, d.cache, d.job))
	}
	{
		cfg := checkcareerreadiness.LoadConfig()
		cfg.Timeout = d.timeout(checkcareerreadiness.TaskType, cfg.Timeout)
		start(checkcareerreadiness.TaskType, checkcareerreadiness.NewHandler(cfg, d.repo, d.cache, d.latestScores(), d.job))
	}
	{
		cfg := calculatefollowuppriority.LoadConfig()
		cfg.Timeout = d.timeout(calculatefollowuppriority.TaskType, cfg.Timeout)
		start(calculatefollowuppriority.TaskType, calculatefollowuppriority.NewHandler(cfg, d.repo, d.job))
	}
	{
		cfg := refreshpriorityscores.LoadConfig()
		cfg.Timeout = d.timeout(refreshpriorityscores.TaskType, cfg.Timeout)
		if ttl := d.cfg.Scoring.RefreshLockTTL; ttl > 0 {
			cfg.LockTTL = time.Duration(ttl) * time.Second
		}
		start(refreshpriorityscores.TaskType, refreshpriorityscores.NewHandler(cfg, d.repo, d.cache, d.job))
	}
	{
		n := d.cfg.Notifications
		cfg := sendfollowupreminder.LoadConfig()
		cfg.Timeout = d.timeout(sendfollowupreminder.TaskType, cfg.Timeout)
		cfg.EmailEnabled = n.Email.Enabled
		cfg.SMSEnabled = n.SMS.Enabled
		if n.SMS.PriorityThreshold > 0 {
			cfg.SMSPriorityThreshold = n.SMS.PriorityThreshold
		}
		if days := d.cfg.Scoring.ReminderAfterDays; days > 0 {
			cfg.AfterDays = days
		}
		if size := d.cfg.Scoring.ReminderBatchSize; size > 0 {
			cfg.BatchSize = size
		}
		start(sendfollowupreminder.TaskType, sendfollowupreminder.NewHandler(cfg, d.repo, d.cache, d.emailSender(), d.smsSender(), d.job))
	}

	return started
}
