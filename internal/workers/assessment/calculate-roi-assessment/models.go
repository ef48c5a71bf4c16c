// internal/workers/assessment/calculate-roi-assessment/models.go
package calculateroiassessment

import (
	"time"

	"roi-assessment-workers/pkg/roi"
)

type Input struct {
	AssessmentInput  *roi.Input `json:"assessmentInput"`
	BenchmarkProfile string     `json:"benchmarkProfile,omitempty"`
}

type Output struct {
	AssessmentID     string     `json:"assessmentId"`
	BenchmarkProfile string     `json:"benchmarkProfile"`
	Assessment       roi.Result `json:"assessment"`
	FitLabel         string     `json:"fitLabel"`
	CalculatedAt     time.Time  `json:"calculatedAt"`
}
