// pkg/roi/models.go
package roi

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Input is the respondent-supplied data the engine scores. Blank form fields
// are expected to arrive here as zero.
type Input struct {
	DatabaseSize                int     `json:"databaseSize" yaml:"database_size"`
	AvgPrice                    float64 `json:"avgPrice" yaml:"avg_price"`
	CommissionRatePercent       float64 `json:"commissionRatePercent" yaml:"commission_rate_percent"`
	MonthlyNewLeads             int     `json:"monthlyNewLeads" yaml:"monthly_new_leads"`
	ProspectingHoursPerWeek     float64 `json:"prospectingHoursPerWeek" yaml:"prospecting_hours_per_week"`
	CurrentAppointmentsPerMonth int     `json:"currentAppointmentsPerMonth" yaml:"current_appointments_per_month"`
	HasStaffFollowUp            bool    `json:"hasStaffFollowUp" yaml:"has_staff_follow_up"`
	StaffMonthlyCost            float64 `json:"staffMonthlyCost" yaml:"staff_monthly_cost"`
}

// Validate reports every constraint violation in the input as ozzo field
// errors keyed by json name. Compute never calls it.
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.DatabaseSize, validation.Min(0)),
		validation.Field(&in.AvgPrice, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.CommissionRatePercent, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(100.0)),
		validation.Field(&in.MonthlyNewLeads, validation.Min(0)),
		validation.Field(&in.ProspectingHoursPerWeek, validation.Min(0.0)),
		validation.Field(&in.CurrentAppointmentsPerMonth, validation.Min(0)),
		validation.Field(&in.StaffMonthlyCost,
			validation.Min(0.0),
			validation.When(!in.HasStaffFollowUp, validation.Empty.Error("must be 0 when hasStaffFollowUp is false")),
		),
	)
}

// FitLevel is the three-tier fit category derived from the fit score.
type FitLevel string

const (
	FitLevelLow    FitLevel = "low"
	FitLevelMedium FitLevel = "medium"
	FitLevelHigh   FitLevel = "high"
)

func (l FitLevel) Valid() bool {
	switch l {
	case FitLevelLow, FitLevelMedium, FitLevelHigh:
		return true
	}
	return false
}

// Label is the respondent-facing headline for the level.
func (l FitLevel) Label() string {
	switch l {
	case FitLevelHigh:
		return "Strong Fit"
	case FitLevelMedium:
		return "Good Potential"
	default:
		return "May Not Be Ready Yet"
	}
}

// Result holds every derived figure, rounded for display.
type Result struct {
	// Echoed inputs
	DatabaseSize                int     `json:"databaseSize"`
	MonthlyNewLeads             int     `json:"monthlyNewLeads"`
	CurrentAppointmentsPerMonth int     `json:"currentAppointmentsPerMonth"`
	ProspectingHoursPerWeek     float64 `json:"prospectingHoursPerWeek"`
	GCIPerDeal                  int64   `json:"gciPerDeal"`

	// Database harvest (one pass)
	DBConversations float64 `json:"dbConversations"`
	DBAppointments  float64 `json:"dbAppointments"`
	DBDeals         float64 `json:"dbDeals"`
	DBGCI           int64   `json:"dbGCI"`

	// New leads
	MonthlyNewLeadConversations float64 `json:"monthlyNewLeadConversations"`
	MonthlyNewLeadAppointments  float64 `json:"monthlyNewLeadAppointments"`
	MonthlyNewLeadDeals         float64 `json:"monthlyNewLeadDeals"`
	YearlyNewLeadDeals          float64 `json:"yearlyNewLeadDeals"`
	YearlyNewLeadGCI            int64   `json:"yearlyNewLeadGCI"`

	TotalYear1GCI       int64   `json:"totalYear1GCI"`
	ROI                 int64   `json:"roi"`
	TotalPotentialDeals float64 `json:"totalPotentialDeals"`
	BreakEvenDeals      float64 `json:"breakEvenDeals"`

	HoursSavedWeekly int64 `json:"hoursSavedWeekly"`
	HoursSavedYearly int64 `json:"hoursSavedYearly"`
	TimeValueSaved   int64 `json:"timeValueSaved"`

	YearlyServiceCost int64 `json:"yearlyServiceCost"`
	YearlyStaffCost   int64 `json:"yearlyStaffCost"`
	PotentialSavings  int64 `json:"potentialSavings"`

	FitScore   int      `json:"fitScore"`
	FitLevel   FitLevel `json:"fitLevel"`
	FitFactors []string `json:"fitFactors"`
}
