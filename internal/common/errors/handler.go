// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler turns worker errors into failed jobs or thrown BPMN errors.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Resolution is what HandleJobError decided to do with a job error.
type Resolution struct {
	Standard *StandardError
	BPMN     *BPMNError
	// Retry is true when the job is failed back to the broker for another
	// attempt instead of throwing a BPMN error.
	Retry   bool
	Retries int
}

// Resolve normalizes err and decides between retrying the job and throwing.
func (h *ErrorHandler) Resolve(job entities.Job, err error) Resolution {
	stdErr := normalizeError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	res := Resolution{Standard: stdErr, BPMN: bpmnErr}
	if bpmnErr.Retries > 0 && job.Retries > 1 {
		res.Retry = true
		// job.Retries is what the broker has left; never raise it.
		res.Retries = bpmnErr.Retries
		if remaining := int(job.Retries) - 1; remaining < res.Retries {
			res.Retries = remaining
		}
	}
	return res
}

// HandleJobError handles any error in a worker job
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Resolution {
	res := h.Resolve(job, err)
	h.logError(job, res)

	var sendErr error
	if res.Retry {
		sendErr = h.failJobWithRetries(ctx, client, job, res.BPMN, res.Retries)
	} else {
		sendErr = h.throwBPMNError(ctx, client, job, res.BPMN)
	}
	if sendErr != nil {
		h.logger.Error("failed to report job error to broker", map[string]interface{}{
			"jobKey": job.Key,
			"error":  sendErr.Error(),
		})
	}
	return res
}

// normalizeError ensures we always have a StandardError
func normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) error {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(retries)).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, err = cmdWithVars.Send(ctx)
			return err
		}
	}

	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) error {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, err = cmdWithVars.Send(ctx)
			return err
		}
	}

	_, err := cmd.Send(ctx)
	return err
}

func (h *ErrorHandler) logError(job entities.Job, res Resolution) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":             job.Key,
		"jobType":            job.Type,
		"errorCode":          string(res.Standard.Code),
		"bpmnErrorCode":      res.BPMN.Code,
		"message":            res.BPMN.Message,
		"details":            res.Standard.Details,
		"retryable":          res.Standard.Retryable,
		"retry":              res.Retry,
		"retries":            res.Retries,
		"errorCategory":      GetErrorCategory(res.Standard.Code),
		"processInstanceKey": job.ProcessInstanceKey,
	})
}
