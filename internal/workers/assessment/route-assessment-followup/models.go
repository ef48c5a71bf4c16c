// internal/workers/assessment/route-assessment-followup/models.go
package routeassessmentfollowup

import "roi-assessment-workers/internal/models"

// Input takes the level directly or from the nested assessment produced by
// calculate-roi-assessment. fitScore alone is enough when no level is given.
type Input struct {
	FitLevel   string          `json:"fitLevel,omitempty"`
	FitScore   *int            `json:"fitScore,omitempty"`
	Assessment *AssessmentView `json:"assessment,omitempty"`
}

type AssessmentView struct {
	FitLevel string `json:"fitLevel"`
	FitScore *int   `json:"fitScore"`
}

type Output struct {
	FitLevel       string                `json:"fitLevel"`
	FitLabel       string                `json:"fitLabel"`
	FollowUpAction models.FollowUpAction `json:"followUpAction"`
	Qualified      bool                  `json:"qualified"`
}
