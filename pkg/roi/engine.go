// pkg/roi/engine.go
package roi

import "math"

const (
	monthsPerYear       = 12
	workingWeeksPerYear = 50
	// Share of manual prospecting effort the calling service takes over.
	automatableShare = 0.8
)

// projection carries the unrounded intermediate figures. Scoring and fit
// factors read these so rounding never shifts a tier boundary.
type projection struct {
	databaseSize    int
	monthlyNewLeads int

	gciPerDeal float64

	dbConversations float64
	dbAppointments  float64
	dbDeals         float64
	dbGCI           float64

	monthlyConversations float64
	monthlyAppointments  float64
	monthlyDeals         float64
	yearlyNewLeadDeals   float64
	yearlyNewLeadGCI     float64

	hoursSavedWeekly float64
	hoursSavedYearly float64
	timeValueSaved   float64

	yearlyServiceCost float64
	yearlyStaffCost   float64
	potentialSavings  float64

	totalYear1GCI float64
	roi           float64
}

// Compute projects the input through the benchmarks and scores the fit.
// It never fails and performs no validation: identical arguments always
// produce an identical Result.
func Compute(input Input, benchmarks BenchmarkConfig) Result {
	p := project(input, benchmarks)

	score := FitScore(p.roi)
	level := LevelForScore(score)

	return Result{
		DatabaseSize:                input.DatabaseSize,
		MonthlyNewLeads:             input.MonthlyNewLeads,
		CurrentAppointmentsPerMonth: input.CurrentAppointmentsPerMonth,
		ProspectingHoursPerWeek:     input.ProspectingHoursPerWeek,
		GCIPerDeal:                  roundWhole(p.gciPerDeal),

		DBConversations: round1(p.dbConversations),
		DBAppointments:  round1(p.dbAppointments),
		DBDeals:         round1(p.dbDeals),
		DBGCI:           roundWhole(p.dbGCI),

		MonthlyNewLeadConversations: round1(p.monthlyConversations),
		MonthlyNewLeadAppointments:  round1(p.monthlyAppointments),
		MonthlyNewLeadDeals:         round2(p.monthlyDeals),
		YearlyNewLeadDeals:          round1(p.yearlyNewLeadDeals),
		YearlyNewLeadGCI:            roundWhole(p.yearlyNewLeadGCI),

		TotalYear1GCI:       roundWhole(p.totalYear1GCI),
		ROI:                 roundWhole(p.roi),
		TotalPotentialDeals: round1(round1(p.dbDeals) + round1(p.yearlyNewLeadDeals)),
		BreakEvenDeals:      breakEvenDeals(p.yearlyServiceCost, p.gciPerDeal),

		HoursSavedWeekly: roundWhole(p.hoursSavedWeekly),
		HoursSavedYearly: roundWhole(p.hoursSavedYearly),
		TimeValueSaved:   roundWhole(p.timeValueSaved),

		YearlyServiceCost: roundWhole(p.yearlyServiceCost),
		YearlyStaffCost:   roundWhole(p.yearlyStaffCost),
		PotentialSavings:  roundWhole(p.potentialSavings),

		FitScore:   score,
		FitLevel:   level,
		FitFactors: fitFactors(p),
	}
}

func project(in Input, b BenchmarkConfig) projection {
	p := projection{
		databaseSize:    in.DatabaseSize,
		monthlyNewLeads: in.MonthlyNewLeads,
	}

	p.gciPerDeal = in.AvgPrice * (in.CommissionRatePercent / 100)

	p.dbConversations = float64(in.DatabaseSize) * b.DatabasePickupRate
	p.dbAppointments = p.dbConversations * b.AnswerToAppointment
	p.dbDeals = p.dbAppointments * b.AppointmentToDeal
	p.dbGCI = p.dbDeals * p.gciPerDeal

	p.monthlyConversations = float64(in.MonthlyNewLeads) * b.NewLeadPickupRate
	p.monthlyAppointments = p.monthlyConversations * b.AnswerToAppointment
	p.monthlyDeals = p.monthlyAppointments * b.AppointmentToDeal
	p.yearlyNewLeadDeals = p.monthlyDeals * monthsPerYear
	p.yearlyNewLeadGCI = p.yearlyNewLeadDeals * p.gciPerDeal

	p.hoursSavedWeekly = in.ProspectingHoursPerWeek * automatableShare
	p.hoursSavedYearly = p.hoursSavedWeekly * workingWeeksPerYear
	p.timeValueSaved = p.hoursSavedYearly * b.AvgAgentHourlyValue

	p.yearlyServiceCost = b.VoiceAIMonthlyCost * monthsPerYear
	if in.HasStaffFollowUp {
		p.yearlyStaffCost = in.StaffMonthlyCost * monthsPerYear
	}
	if p.yearlyStaffCost > 0 {
		p.potentialSavings = math.Max(0, p.yearlyStaffCost-p.yearlyServiceCost)
	}

	p.totalYear1GCI = p.dbGCI + p.yearlyNewLeadGCI
	if p.yearlyServiceCost > 0 {
		p.roi = (p.totalYear1GCI - p.yearlyServiceCost) / p.yearlyServiceCost * 100
	}

	return p
}

// breakEvenDeals is the number of deals per year that cover the service cost,
// rounded up to one decimal.
func breakEvenDeals(yearlyServiceCost, gciPerDeal float64) float64 {
	if gciPerDeal <= 0 {
		return 0
	}
	return math.Ceil(yearlyServiceCost/gciPerDeal*10) / 10
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundWhole(v float64) int64 {
	return int64(math.Round(v))
}
