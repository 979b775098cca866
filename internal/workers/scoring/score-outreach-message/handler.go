package scoreoutreachmessage

import (
	"context"

	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-outreach-message"

	sendThreshold = 70
)

type Handler struct {
	config *Config
	lang   scoring.LanguagePack
	deps   camunda.JobDeps
	logger logger.Logger
}

func NewHandler(config *Config, lang scoring.LanguagePack, deps camunda.JobDeps) *Handler {
	deps.Logger = deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		lang:   lang,
		deps:   deps,
		logger: deps.Logger,
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
	msgType := scoring.ParseMessageType(input.MessageType)
	result := scoring.ScoreMessageWith(h.lang, scoring.MessageInput{
		Text:          input.Text,
		Type:          msgType,
		RecruiterName: input.RecruiterName,
		CompanyName:   input.CompanyName,
	})
	h.deps.ObserveScore(ctx, "message", result.Total)

	h.logger.Debug("message scored", map[string]interface{}{
		"userId":      input.UserID,
		"recruiterId": input.RecruiterID,
		"messageType": msgType,
		"score":       result.Total,
		"words":       result.WordCount,
	})

	return &Output{
		MessageScore:            result.Total,
		Components:              result.Components,
		Feedback:                result.Feedback,
		Suggestions:             result.Suggestions,
		MessageType:             string(msgType),
		WordCount:               result.WordCount,
		HasPersonalization:      result.HasPersonalization,
		HasMetrics:              result.HasMetrics,
		HasCTA:                  result.HasCTA,
		PersonalizationElements: result.PersonalizationElements,
		ReadyToSend:             result.Total >= sendThreshold,
	}, nil
}
