// internal/workers/assessment/validate-assessment-input/handler.go
package validateassessmentinput

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"roi-assessment-workers/internal/common/errors"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/internal/common/validation"
)

const (
	TaskType = "validate-assessment-input"
)

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
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

	if !output.IsValid && h.config.ThrowOnInvalid {
		h.failJob(ctx, client, job, validationFailed(output.ValidationErrors))
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{BenchmarkProfile: h.profileID(input.BenchmarkProfile)}

	shape, err := validation.ValidateAnswersShape(input.Answers)
	if err != nil {
		return nil, err
	}
	if !shape.Valid {
		output.ValidationErrors = shape.Errors
		h.logInvalid(output)
		return output, nil
	}

	answers, fieldErrs := validation.DecodeAnswers(input.Answers)
	if len(fieldErrs) > 0 {
		output.ValidationErrors = fieldErrs
		h.logInvalid(output)
		return output, nil
	}

	assessmentInput := answers.AssessmentInput()
	if err := assessmentInput.Validate(); err != nil {
		output.ValidationErrors = constraintErrors(err)
		h.logInvalid(output)
		return output, nil
	}

	profile := answers.RespondentProfile()
	output.IsValid = true
	output.AssessmentInput = &assessmentInput
	output.RespondentProfile = &profile

	h.logger.Info("assessment answers accepted", map[string]interface{}{
		"benchmarkProfile": output.BenchmarkProfile,
		"hasStaffFollowUp": assessmentInput.HasStaffFollowUp,
	})
	return output, nil
}

func (h *Handler) profileID(requested string) string {
	id := strings.ToLower(strings.TrimSpace(requested))
	if id == "" {
		return h.config.DefaultBenchmarkProfile
	}
	return id
}

func (h *Handler) logInvalid(output *Output) {
	h.logger.Warn("assessment answers rejected", map[string]interface{}{
		"errorCount": len(output.ValidationErrors),
		"errors":     messages(output.ValidationErrors),
	})
}

// constraintErrors flattens the ozzo field map from roi.Input.Validate,
// prefixing each field with assessmentInput.
func constraintErrors(err error) []validation.ValidationError {
	fieldErrs, ok := err.(ozzo.Errors)
	if !ok {
		return []validation.ValidationError{{
			Field:   "assessmentInput",
			Message: err.Error(),
			Code:    "CONSTRAINT_VIOLATION",
		}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]validation.ValidationError, 0, len(fields))
	for _, field := range fields {
		code := "CONSTRAINT_VIOLATION"
		if e, ok := fieldErrs[field].(ozzo.Error); ok {
			code = e.Code()
		}
		out = append(out, validation.ValidationError{
			Field:   "assessmentInput." + field,
			Message: fieldErrs[field].Error(),
			Code:    code,
		})
	}
	return out
}

func messages(errs []validation.ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}

func validationFailed(errs []validation.ValidationError) *errors.StandardError {
	msgs := messages(errs)
	return errors.NewAssessmentValidationFailedError(strings.Join(msgs, "; ")).
		WithMetadata("validationErrors", msgs)
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
