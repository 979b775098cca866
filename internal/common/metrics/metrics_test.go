package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer(t *testing.T) {
	const taskType = "metrics-test-task"

	timer := StartJob(taskType)
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))

	timer.Complete()
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(taskType)))

	StartJob(taskType).Fail("DATABASE_ERROR")
	assert.Equal(t, 1.0, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(taskType, "DATABASE_ERROR")))
	assert.Equal(t, 0.0, testutil.ToFloat64(WorkerJobsActive.WithLabelValues(taskType)))
}

func TestObserveScore(t *testing.T) {
	before := testutil.CollectAndCount(ScoreValue)
	ObserveScore("metrics-test-scorer", 87)
	assert.Equal(t, before+1, testutil.CollectAndCount(ScoreValue))
}
