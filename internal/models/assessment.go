// internal/models/assessment.go
package models

import (
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"roi-assessment-workers/pkg/roi"
)

// Questionnaire option values as the front end submits them.
const (
	FollowUpMyself = "myself"
	FollowUpISA    = "isa"
	FollowUpTeam   = "team"
	FollowUpNobody = "nobody"
)

var yearsInBusinessOptions = []interface{}{"under1", "1-3", "3-5", "5-10", "10+"}

// QuestionnaireAnswers is the coerced questionnaire payload. Field names
// follow the form, not the engine.
type QuestionnaireAnswers struct {
	YearsInBusiness     string   `json:"yearsInBusiness,omitempty"`
	ServiceArea         string   `json:"serviceArea,omitempty"`
	AvgPrice            float64  `json:"avgPrice"`
	CommissionRate      float64  `json:"commissionRate"`
	DatabaseSize        int      `json:"databaseSize"`
	UsesPaidAds         *bool    `json:"usesPaidAds,omitempty"`
	MonthlyAdSpend      float64  `json:"monthlyAdSpend"`
	MonthlyNewLeads     int      `json:"monthlyNewLeads"`
	WhoFollowsUp        []string `json:"whoFollowsUp,omitempty"`
	HasISA              *bool    `json:"hasISA"`
	ISACost             float64  `json:"isaCost"`
	ProspectingHours    float64  `json:"prospectingHours"`
	CurrentAppointments int      `json:"currentAppointments"`
}

// Validate applies the form-level rules. Error keys are the json field names.
func (a QuestionnaireAnswers) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.YearsInBusiness, validation.In(yearsInBusinessOptions...)),
		validation.Field(&a.AvgPrice, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&a.CommissionRate, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(100.0)),
		validation.Field(&a.DatabaseSize, validation.Min(0)),
		validation.Field(&a.MonthlyAdSpend, validation.Min(0.0)),
		validation.Field(&a.MonthlyNewLeads, validation.Min(0)),
		validation.Field(&a.WhoFollowsUp, validation.Each(validation.In(FollowUpMyself, FollowUpISA, FollowUpTeam, FollowUpNobody))),
		validation.Field(&a.ISACost, validation.Min(0.0)),
		validation.Field(&a.ProspectingHours, validation.Min(0.0)),
		validation.Field(&a.CurrentAppointments, validation.Min(0)),
	)
}

// HasStaffFollowUp is true when the respondent pays an ISA or assistant.
// An unanswered hasISA falls back to the follow-up checklist.
func (a QuestionnaireAnswers) HasStaffFollowUp() bool {
	if a.HasISA != nil {
		return *a.HasISA
	}
	return slices.Contains(a.WhoFollowsUp, FollowUpISA)
}

// AssessmentInput maps the answers onto the engine input. A stale isaCost
// left behind after deselecting the ISA option is dropped.
func (a QuestionnaireAnswers) AssessmentInput() roi.Input {
	in := roi.Input{
		DatabaseSize:                a.DatabaseSize,
		AvgPrice:                    a.AvgPrice,
		CommissionRatePercent:       a.CommissionRate,
		MonthlyNewLeads:             a.MonthlyNewLeads,
		ProspectingHoursPerWeek:     a.ProspectingHours,
		CurrentAppointmentsPerMonth: a.CurrentAppointments,
		HasStaffFollowUp:            a.HasStaffFollowUp(),
	}
	if in.HasStaffFollowUp {
		in.StaffMonthlyCost = a.ISACost
	}
	return in
}

// RespondentProfile is the context that travels with an assessment but never
// enters the math.
type RespondentProfile struct {
	YearsInBusiness string   `json:"yearsInBusiness,omitempty"`
	ServiceArea     string   `json:"serviceArea,omitempty"`
	UsesPaidAds     *bool    `json:"usesPaidAds,omitempty"`
	MonthlyAdSpend  float64  `json:"monthlyAdSpend"`
	WhoFollowsUp    []string `json:"whoFollowsUp,omitempty"`
}

func (a QuestionnaireAnswers) RespondentProfile() RespondentProfile {
	return RespondentProfile{
		YearsInBusiness: a.YearsInBusiness,
		ServiceArea:     a.ServiceArea,
		UsesPaidAds:     a.UsesPaidAds,
		MonthlyAdSpend:  a.MonthlyAdSpend,
		WhoFollowsUp:    a.WhoFollowsUp,
	}
}

// FollowUpAction is the call to action offered once the assessment is shown.
type FollowUpAction string

const (
	FollowUpFreeTrial    FollowUpAction = "free-trial"
	FollowUpConsultation FollowUpAction = "consultation"
)
