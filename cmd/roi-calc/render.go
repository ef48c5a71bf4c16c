// cmd/roi-calc/render.go
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"roi-assessment-workers/pkg/roi"
)

func renderJSON(r roi.Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// renderText lays the result out the way the results page groups it.
func renderText(r roi.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (fit score %d, %s)\n\n", r.FitLevel.Label(), r.FitScore, r.FitLevel)

	b.WriteString("Year-one projection\n")
	fmt.Fprintf(&b, "  ROI:                  %s%%\n", commas(r.ROI))
	fmt.Fprintf(&b, "  Total GCI:            $%s\n", commas(r.TotalYear1GCI))
	fmt.Fprintf(&b, "  Voice AI cost:        $%s\n", commas(r.YearlyServiceCost))
	fmt.Fprintf(&b, "  Potential deals:      %.1f\n", r.TotalPotentialDeals)
	fmt.Fprintf(&b, "  Break-even deals:     %.1f\n\n", r.BreakEvenDeals)

	b.WriteString("Database reactivation\n")
	fmt.Fprintf(&b, "  Conversations:        %.1f\n", r.DBConversations)
	fmt.Fprintf(&b, "  Appointments:         %.1f\n", r.DBAppointments)
	fmt.Fprintf(&b, "  Deals:                %.1f\n", r.DBDeals)
	fmt.Fprintf(&b, "  GCI:                  $%s\n\n", commas(r.DBGCI))

	if r.MonthlyNewLeads > 0 {
		b.WriteString("New lead response\n")
		fmt.Fprintf(&b, "  Conversations/month:  %.1f\n", r.MonthlyNewLeadConversations)
		fmt.Fprintf(&b, "  Appointments/month:   %.1f\n", r.MonthlyNewLeadAppointments)
		fmt.Fprintf(&b, "  Deals/month:          %.2f\n", r.MonthlyNewLeadDeals)
		fmt.Fprintf(&b, "  Deals/year:           %.1f\n", r.YearlyNewLeadDeals)
		fmt.Fprintf(&b, "  GCI/year:             $%s\n\n", commas(r.YearlyNewLeadGCI))
	}

	b.WriteString("Time\n")
	fmt.Fprintf(&b, "  Hours saved/week:     %d\n", r.HoursSavedWeekly)
	fmt.Fprintf(&b, "  Hours saved/year:     %d\n", r.HoursSavedYearly)
	fmt.Fprintf(&b, "  Value of time saved:  $%s\n", commas(r.TimeValueSaved))

	if r.YearlyStaffCost > 0 {
		fmt.Fprintf(&b, "\nStaff comparison\n")
		fmt.Fprintf(&b, "  Current staff cost:   $%s/year\n", commas(r.YearlyStaffCost))
		fmt.Fprintf(&b, "  Potential savings:    $%s/year\n", commas(r.PotentialSavings))
	}

	b.WriteString("\nWhy\n")
	for _, f := range r.FitFactors {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	return b.String()
}

// commas formats n with thousands separators.
func commas(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
