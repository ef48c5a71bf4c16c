// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestObservability_Records(t *testing.T) {
	reader := metric.NewManualReader()
	o := NewWithReader("roi-assessment-workers", reader)
	ctx := context.Background()

	o.RecordJobProcessed(ctx, "calculate-roi-assessment", "completed")
	o.RecordJobProcessed(ctx, "calculate-roi-assessment", "completed")
	o.RecordJobDuration(ctx, "calculate-roi-assessment", 12*time.Millisecond, "completed")
	o.RecordAssessment(ctx, "high", "standard")

	metrics := collect(t, reader)

	require.Contains(t, metrics, "jobs.processed")
	sum, ok := metrics["jobs.processed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	assert.Contains(t, metrics, "jobs.duration")
	assert.Contains(t, metrics, "assessments.calculated")

	assert.NoError(t, o.Shutdown(ctx))
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var o Observability
	ctx := context.Background()

	o.RecordJobProcessed(ctx, "route-assessment-followup", "failed")
	o.RecordJobDuration(ctx, "route-assessment-followup", time.Second, "failed")
	o.RecordAssessment(ctx, "low", "standard")
	assert.NoError(t, o.Shutdown(ctx))
}
