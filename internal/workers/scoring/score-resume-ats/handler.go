package scoreresumeats

import (
	"context"
	"time"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "score-resume-ats"
)

// ScoreIndexer is the subset of store.ScoreIndex this worker writes to.
type ScoreIndexer interface {
	Index(ctx context.Context, doc store.ResumeScoreDocument) error
}

type Handler struct {
	config *Config
	lang   scoring.LanguagePack
	index  ScoreIndexer
	deps   camunda.JobDeps
	logger logger.Logger
	now    func() time.Time
}

// NewHandler wires the ATS worker. index may be nil when Elasticsearch is
// not configured.
func NewHandler(config *Config, lang scoring.LanguagePack, index ScoreIndexer, deps camunda.JobDeps) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	deps.Logger = log
	return &Handler{
		config: config,
		lang:   lang,
		index:  index,
		deps:   deps,
		logger: log,
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
	result := scoring.ScoreATSWith(h.lang, scoring.ATSInput{
		Text:           input.Text,
		ParsedSections: input.ParsedSections,
		JobKeywords:    input.JobKeywords,
		TargetRole:     input.TargetRole,
		FileType:       scoring.ParseFileType(input.FileType),
	})
	h.deps.ObserveScore(ctx, "ats", result.Total)

	h.logger.Info("ats score calculated", map[string]interface{}{
		"userId":     input.UserID,
		"resumeId":   input.ResumeID,
		"score":      result.Total,
		"components": result.Components,
		"missing":    len(result.MissingKeywords),
	})

	output := &Output{
		ATSScore:        result.Total,
		Components:      result.Components,
		Feedback:        result.Feedback,
		Suggestions:     result.Suggestions,
		MissingKeywords: result.MissingKeywords,
		WeakSections:    result.WeakSections,
		Recommendations: result.Recommendations,
	}

	if h.index != nil && h.config.IndexResults && input.UserID != "" {
		output.ScoreID = uuid.NewString()
		err := h.index.Index(ctx, store.ResumeScoreDocument{
			ID:              output.ScoreID,
			UserID:          input.UserID,
			ResumeID:        input.ResumeID,
			TargetRole:      input.TargetRole,
			FileType:        string(scoring.ParseFileType(input.FileType)),
			TotalScore:      result.Total,
			Components:      result.Components,
			MissingKeywords: result.MissingKeywords,
			WeakSections:    result.WeakSections,
			ScoredAt:        h.now().UTC(),
		})
		// The score is still valid without its analytics copy.
		if err != nil {
			h.logger.Warn("failed to index ats score", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
		} else {
			output.Indexed = true
		}
	}

	return output, nil
}
