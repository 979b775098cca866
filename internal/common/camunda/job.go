// internal/common/camunda/job.go
package camunda

import (
	"context"
	"time"

	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/common/metrics"
	"jobezie-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName  = "jobezie-workers"
	sendTimeout = 5 * time.Second
)

// Recorder exports job and score telemetry; *observability.Observability
// implements it.
type Recorder interface {
	StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	RecordJob(ctx context.Context, taskType, status string, duration time.Duration)
	RecordScore(ctx context.Context, scorer string, total int)
}

// JobDeps are shared by every handler. Validator, Errors and Recorder are
// optional.
type JobDeps struct {
	Validator *validation.Validator
	Errors    *errors.ErrorHandler
	Recorder  Recorder
	Logger    logger.Logger
}

// ObserveScore records a composite score on the Prometheus histogram and,
// when configured, the OpenTelemetry one.
func (d JobDeps) ObserveScore(ctx context.Context, scorer string, total int) {
	metrics.ObserveScore(scorer, total)
	if d.Recorder != nil {
		d.Recorder.RecordScore(ctx, scorer, total)
	}
}

func (d JobDeps) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if d.Recorder != nil {
		return d.Recorder.StartSpan(ctx, name, attrs...)
	}
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func (d JobDeps) recordJob(ctx context.Context, taskType, status string, started time.Time) {
	if d.Recorder != nil {
		d.Recorder.RecordJob(ctx, taskType, status, time.Since(started))
	}
}

// Job runs one activated job: decode and validate variables into I, call
// Execute under a timeout and a span, then complete the job with O or hand
// the error to the ErrorHandler.
type Job[I, O any] struct {
	TaskType string
	Timeout  time.Duration
	Deps     JobDeps
	Execute  func(ctx context.Context, input *I) (*O, error)
}

func (j Job[I, O]) Handle(client worker.JobClient, job entities.Job) {
	log := j.Deps.Logger
	errHandler := j.Deps.Errors
	if errHandler == nil {
		errHandler = errors.NewErrorHandler(log)
	}

	started := time.Now()
	timer := metrics.StartJob(j.TaskType)
	log.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
		"retries":     job.Retries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()
	ctx, span := j.Deps.startSpan(ctx, j.TaskType, attribute.Int64("zeebe.job_key", job.Key))
	defer span.End()

	fail := func(err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		code := string(errors.ErrCodeInternal)
		if stdErr, ok := errors.AsStandardError(err); ok {
			code = string(stdErr.Code)
		}
		timer.Fail(code)
		j.Deps.recordJob(context.WithoutCancel(ctx), j.TaskType, "failed", started)

		// ctx may already be past its deadline here.
		sendCtx, cancelSend := context.WithTimeout(context.Background(), sendTimeout)
		defer cancelSend()
		errHandler.HandleJobError(sendCtx, client, job, err)
	}

	vars, err := job.GetVariablesAsMap()
	if err != nil {
		fail(errors.NewInvalidJobVariablesError(err))
		return
	}

	var input I
	if err := j.Deps.Validator.ValidateAndDecode(j.TaskType, vars, &input); err != nil {
		fail(err)
		return
	}

	output, err := j.Execute(ctx, &input)
	if err != nil {
		fail(err)
		return
	}

	if err := complete(client, job, output); err != nil {
		log.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		timer.Fail("COMPLETE_FAILED")
		j.Deps.recordJob(context.WithoutCancel(ctx), j.TaskType, "failed", started)
		return
	}
	timer.Complete()
	j.Deps.recordJob(context.WithoutCancel(ctx), j.TaskType, "completed", started)
}

func complete(client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	_, err = cmd.Send(ctx)
	return err
}
