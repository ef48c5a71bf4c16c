// internal/workers/assessment/route-assessment-followup/handler_test.go
package routeassessmentfollowup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-assessment-workers/internal/common/errors"
	"roi-assessment-workers/internal/common/logger"
	"roi-assessment-workers/internal/common/metrics"
	"roi-assessment-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: time.Second}
}

func intPtr(v int) *int { return &v }

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Routing(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		level     string
		label     string
		action    models.FollowUpAction
		qualified bool
	}{
		{
			name:      "high fit gets the free trial",
			input:     &Input{FitLevel: "high", FitScore: intPtr(75)},
			level:     "high",
			label:     "Strong Fit",
			action:    models.FollowUpFreeTrial,
			qualified: true,
		},
		{
			name:      "medium fit gets the free trial",
			input:     &Input{FitLevel: "medium"},
			level:     "medium",
			label:     "Good Potential",
			action:    models.FollowUpFreeTrial,
			qualified: true,
		},
		{
			name:      "low fit gets a consultation",
			input:     &Input{FitLevel: "low", FitScore: intPtr(10)},
			level:     "low",
			label:     "May Not Be Ready Yet",
			action:    models.FollowUpConsultation,
			qualified: false,
		},
		{
			name:      "level is case-insensitive",
			input:     &Input{FitLevel: " HIGH "},
			level:     "high",
			label:     "Strong Fit",
			action:    models.FollowUpFreeTrial,
			qualified: true,
		},
		{
			name:      "score 65 alone is high",
			input:     &Input{FitScore: intPtr(65)},
			level:     "high",
			label:     "Strong Fit",
			action:    models.FollowUpFreeTrial,
			qualified: true,
		},
		{
			name:      "score 39 alone is low",
			input:     &Input{FitScore: intPtr(39)},
			level:     "low",
			label:     "May Not Be Ready Yet",
			action:    models.FollowUpConsultation,
			qualified: false,
		},
		{
			name:      "nested assessment",
			input:     &Input{Assessment: &AssessmentView{FitLevel: "medium", FitScore: intPtr(55)}},
			level:     "medium",
			label:     "Good Potential",
			action:    models.FollowUpFreeTrial,
			qualified: true,
		},
	}

	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.level, output.FitLevel)
			assert.Equal(t, tt.label, output.FitLabel)
			assert.Equal(t, tt.action, output.FollowUpAction)
			assert.Equal(t, tt.qualified, output.Qualified)
		})
	}
}

func TestHandler_Execute_DecodesCalculatorOutput(t *testing.T) {
	vars := `{"assessmentId":"a1","assessment":{"fitScore":75,"fitLevel":"high","roi":942}}`

	var input Input
	require.NoError(t, json.Unmarshal([]byte(vars), &input))

	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &input)
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpFreeTrial, output.FollowUpAction)
}

func TestHandler_Execute_CountsRoutes(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	counter := metrics.FollowUpsRouted.WithLabelValues(string(models.FollowUpConsultation))
	before := testutil.ToFloat64(counter)

	_, err := handler.Execute(context.Background(), &Input{FitLevel: "low"})
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_RoutingFailures(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "unknown level", input: &Input{FitLevel: "excellent"}},
		{name: "nothing to route on", input: &Input{}},
		{name: "score above range", input: &Input{FitScore: intPtr(101)}},
		{name: "negative score", input: &Input{FitScore: intPtr(-1)}},
	}

	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			assert.Nil(t, output)

			stdErr, ok := errors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeFollowUpRoutingFailed, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}
