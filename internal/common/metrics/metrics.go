// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AssessmentsCalculated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_assessments_calculated_total",
			Help: "Assessments calculated, by fit level and benchmark profile",
		},
		[]string{"fit_level", "benchmark_profile"},
	)

	AssessmentFitScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roi_assessment_fit_score",
			Help:    "Distribution of calculated fit scores",
			Buckets: []float64{10, 20, 35, 45, 55, 65, 75, 85, 92, 98},
		},
	)

	AssessmentROIPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roi_assessment_roi_percent",
			Help:    "Distribution of projected year-one ROI percentages",
			Buckets: []float64{-100, 0, 50, 100, 200, 300, 500, 1000, 2000, 3000},
		},
	)

	FollowUpsRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_followups_routed_total",
			Help: "Follow-up actions chosen after an assessment",
		},
		[]string{"action"},
	)

	BenchmarkProfilesLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roi_benchmark_profiles_loaded",
			Help: "Benchmark profiles currently held, by source",
		},
		[]string{"source"},
	)
)

// Job outcomes as seen by the broker.
const (
	OutcomeCompleted   = "completed"
	OutcomeFailed      = "failed"
	OutcomeErrorThrown = "error_thrown"
	OutcomeUnanswered  = "unanswered"
)

// JobTimer tracks one job from activation until the handler returns.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active for taskType.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Done releases the job and records its duration.
func (j *JobTimer) Done(outcome string) time.Duration {
	elapsed := time.Since(j.start)
	WorkerJobsActive.WithLabelValues(j.taskType).Dec()
	WorkerJobDuration.WithLabelValues(j.taskType).Observe(elapsed.Seconds())
	if outcome == OutcomeCompleted {
		WorkerJobsCompleted.WithLabelValues(j.taskType).Inc()
	}
	return elapsed
}

// RecordJobFailure counts a job that ended with errorCode.
func RecordJobFailure(taskType, errorCode string) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// RecordAssessment feeds the assessment distributions.
func RecordAssessment(fitLevel, benchmarkProfile string, fitScore int, roiPercent int64) {
	AssessmentsCalculated.WithLabelValues(fitLevel, benchmarkProfile).Inc()
	AssessmentFitScore.Observe(float64(fitScore))
	AssessmentROIPercent.Observe(float64(roiPercent))
}
