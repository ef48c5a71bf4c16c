// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, msg)
}

func createMockJob(retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                7,
		Type:               "calculate-roi-assessment",
		ProcessInstanceKey: 70,
		Retries:            retries,
		Variables:          "{}",
	}}
}

// ==========================
// Conversion Tests
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewBenchmarkProfileNotFoundError("enterprise")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "BENCHMARK_PROFILE_NOT_FOUND", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "BENCHMARK_PROFILE_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "enterprise", vars["benchmarkProfile"])
	assert.Equal(t, "BENCHMARK_PROFILE_NOT_FOUND", vars["originalErrorCode"])
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeBenchmarkLoadFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeQueryTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeAssessmentValidationFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeFollowUpRoutingFailed))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "BENCHMARK", GetErrorCategory(ErrCodeBenchmarkInvalid))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "ROUTING", GetErrorCategory(ErrCodeFollowUpRoutingFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputParseFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestAsStandardError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("resolve: %w", NewBenchmarkInvalidError("standard", stderrors.New("rate out of range")))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeBenchmarkInvalid, stdErr.Code)

	_, ok = AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)
}

// ==========================
// ErrorHandler Tests
// ==========================

func TestErrorHandler_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		jobRetries    int32
		expectRetry   bool
		expectRetries int
		expectCode    string
	}{
		{
			name:       "business error throws",
			err:        NewAssessmentValidationFailedError("avgPrice must be positive"),
			jobRetries: 3,
			expectCode: "ASSESSMENT_VALIDATION_FAILED",
		},
		{
			name:          "retryable error fails with retries",
			err:           NewBenchmarkLoadFailedError("postgres", stderrors.New("connection refused")),
			jobRetries:    3,
			expectRetry:   true,
			expectRetries: 2,
			expectCode:    "BENCHMARK_LOAD_FAILED",
		},
		{
			name:       "retryable error on last attempt throws",
			err:        NewBenchmarkLoadFailedError("postgres", stderrors.New("connection refused")),
			jobRetries: 1,
			expectCode: "BENCHMARK_LOAD_FAILED",
		},
		{
			name:       "plain error becomes internal",
			err:        stderrors.New("nil pointer"),
			jobRetries: 3,
			expectCode: "INTERNAL_ERROR",
		},
	}

	h := NewErrorHandler(&recordingLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Resolve(createMockJob(tt.jobRetries), tt.err)

			assert.Equal(t, tt.expectRetry, res.Retry)
			assert.Equal(t, tt.expectRetries, res.Retries)
			assert.Equal(t, tt.expectCode, res.BPMN.Code)
		})
	}
}
