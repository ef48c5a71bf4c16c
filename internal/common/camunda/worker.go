// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"roi-assessment-workers/internal/common/config"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/internal/common/observability"
)

// JobHandler is implemented by every worker in internal/workers.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// outcomeClient remembers which command the handler sent back to the broker.
type outcomeClient struct {
	worker.JobClient
	outcome string
}

func (c *outcomeClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.outcome = metrics.OutcomeCompleted
	return c.JobClient.NewCompleteJobCommand()
}

func (c *outcomeClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.outcome = metrics.OutcomeFailed
	return c.JobClient.NewFailJobCommand()
}

func (c *outcomeClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.outcome = metrics.OutcomeErrorThrown
	return c.JobClient.NewThrowErrorCommand()
}

// Instrument wraps handler so every job is timed and its outcome recorded in
// Prometheus and OpenTelemetry. obs may be nil.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability) worker.JobHandler {
	if obs == nil {
		obs = &observability.Observability{}
	}
	return func(client worker.JobClient, job entities.Job) {
		timer := metrics.StartJob(taskType)
		oc := &outcomeClient{JobClient: client, outcome: metrics.OutcomeUnanswered}

		handler.Handle(oc, job)

		elapsed := timer.Done(oc.outcome)
		ctx := context.Background()
		obs.RecordJobProcessed(ctx, taskType, oc.outcome)
		obs.RecordJobDuration(ctx, taskType, elapsed, oc.outcome)
	}
}

// StartWorker opens a job worker for taskType unless it is disabled.
func StartWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}
