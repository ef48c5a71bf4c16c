// internal/workers/assessment/calculate-roi-assessment/handler.go
package calculateroiassessment

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"roi-assessment-workers/internal/common/benchmarks"
	"roi-assessment-workers/internal/common/errors"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/internal/common/observability"
	"roi-assessment-workers/pkg/roi"
)

const (
	TaskType = "calculate-roi-assessment"
)

// ProfileResolver is satisfied by *benchmarks.Store.
type ProfileResolver interface {
	Resolve(ctx context.Context, id string) (string, roi.BenchmarkConfig, error)
}

type Handler struct {
	config       *Config
	profiles     ProfileResolver
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler builds the handler; obs may be nil.
func NewHandler(config *Config, profiles ProfileResolver, obs *observability.Observability, log logger.Logger) *Handler {
	if obs == nil {
		obs = &observability.Observability{}
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     profiles,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, errors.NewInputParseFailedError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.AssessmentInput == nil {
		return nil, errors.NewAssessmentValidationFailedError("assessmentInput is required")
	}
	if err := input.AssessmentInput.Validate(); err != nil {
		return nil, errors.NewAssessmentValidationFailedError(err.Error())
	}

	profileID, profile, err := h.profiles.Resolve(ctx, input.BenchmarkProfile)
	if err != nil {
		return nil, resolveError(input.BenchmarkProfile, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, errors.NewBenchmarkInvalidError(profileID, err)
	}

	result := roi.Compute(*input.AssessmentInput, profile)

	metrics.RecordAssessment(string(result.FitLevel), profileID, result.FitScore, result.ROI)
	h.obs.RecordAssessment(ctx, string(result.FitLevel), profileID)

	output := &Output{
		AssessmentID:     uuid.New().String(),
		BenchmarkProfile: profileID,
		Assessment:       result,
		FitLabel:         result.FitLevel.Label(),
		CalculatedAt:     h.now().UTC(),
	}

	h.logger.Info("assessment calculated", map[string]interface{}{
		"assessmentId":     output.AssessmentID,
		"benchmarkProfile": profileID,
		"roi":              result.ROI,
		"fitScore":         result.FitScore,
		"fitLevel":         string(result.FitLevel),
		"fitFactors":       result.FitFactors,
	})

	return output, nil
}

func resolveError(requested string, err error) error {
	switch {
	case stderrors.Is(err, benchmarks.ErrRegistryUnavailable) && stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewQueryTimeoutError("benchmark_profiles")
	case stderrors.Is(err, benchmarks.ErrRegistryUnavailable):
		return errors.NewBenchmarkLoadFailedError("registry", err)
	case stderrors.Is(err, benchmarks.ErrProfileNotFound):
		return errors.NewBenchmarkProfileNotFoundError(requested)
	default:
		return errors.NewInternalError(err)
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	res := h.errorHandler.HandleJobError(ctx, client, job, err)
	metrics.RecordJobFailure(TaskType, string(res.Standard.Code))
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
