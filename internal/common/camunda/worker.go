// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"jobezie-workers/internal/common/config"
	"jobezie-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every scoring worker.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerGroup owns the open job workers so shutdown can drain them.
type WorkerGroup struct {
	mu      sync.Mutex
	client  zbc.Client
	log     logger.Logger
	workers map[string]worker.JobWorker
}

func NewWorkerGroup(client zbc.Client, log logger.Logger) *WorkerGroup {
	return &WorkerGroup{
		client:  client,
		log:     log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless it is disabled in config.
func (g *WorkerGroup) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) bool {
	if !wcfg.Enabled {
		g.log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}

	jw := g.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	g.mu.Lock()
	g.workers[taskType] = jw
	g.mu.Unlock()

	g.log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

func (g *WorkerGroup) TaskTypes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	types := make([]string, 0, len(g.workers))
	for t := range g.workers {
		types = append(types, t)
	}
	return types
}

// Close stops polling and waits up to timeout for in-flight jobs.
func (g *WorkerGroup) Close(timeout time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for taskType, jw := range g.workers {
			wg.Add(1)
			go func(taskType string, jw worker.JobWorker) {
				defer wg.Done()
				jw.Close()
				jw.AwaitClose()
				g.log.Info("worker stopped", map[string]interface{}{"taskType": taskType})
			}(taskType, jw)
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		g.log.Warn("timed out waiting for workers to drain", map[string]interface{}{"timeout": timeout.String()})
	}
	g.workers = make(map[string]worker.JobWorker)
}
