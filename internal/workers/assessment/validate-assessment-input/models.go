// internal/workers/assessment/validate-assessment-input/models.go
package validateassessmentinput

import (
	"roi-assessment-workers/internal/common/validation"
	"roi-assessment-workers/internal/models"
	"roi-assessment-workers/pkg/roi"
)

type Input struct {
	Answers          map[string]interface{} `json:"answers"`
	BenchmarkProfile string                 `json:"benchmarkProfile,omitempty"`
}

type Output struct {
	IsValid           bool                         `json:"isValid"`
	AssessmentInput   *roi.Input                   `json:"assessmentInput,omitempty"`
	RespondentProfile *models.RespondentProfile    `json:"respondentProfile,omitempty"`
	BenchmarkProfile  string                       `json:"benchmarkProfile"`
	ValidationErrors  []validation.ValidationError `json:"validationErrors,omitempty"`
}
