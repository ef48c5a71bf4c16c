// pkg/roi/scoring.go
package roi

import "math"

// FallbackFactor is emitted alone when no other fit factor applies.
const FallbackFactor = "Building momentum"

type scoreTier struct {
	minROI float64
	score  int
}

// scoreTiers is scanned highest-first; the first tier whose lower bound the
// ROI reaches wins.
var scoreTiers = []scoreTier{
	{minROI: 3000, score: 98},
	{minROI: 2000, score: 92},
	{minROI: 1000, score: 85},
	{minROI: 500, score: 75},
	{minROI: 300, score: 65},
	{minROI: 200, score: 55},
	{minROI: 100, score: 45},
	{minROI: 50, score: 35},
}

const (
	minimumFitScore = 10
	highFitScore    = 65
	mediumFitScore  = 40
)

// FitScore maps an ROI percentage onto the 0-100 fit scale.
func FitScore(roi float64) int {
	for _, tier := range scoreTiers {
		if roi >= tier.minROI {
			return tier.score
		}
	}
	score := int(math.Round(roi / 2))
	if score < minimumFitScore {
		score = minimumFitScore
	}
	if score > 100 {
		score = 100
	}
	return score
}

// LevelForScore buckets a fit score. Boundaries belong to the higher level.
func LevelForScore(score int) FitLevel {
	switch {
	case score >= highFitScore:
		return FitLevelHigh
	case score >= mediumFitScore:
		return FitLevelMedium
	default:
		return FitLevelLow
	}
}

type factorRule struct {
	label string
	when  func(p projection) bool
}

// factorCategories are evaluated in order. Within a category only the first
// matching rule contributes; categories are independent of each other.
var factorCategories = [][]factorRule{
	{
		{"High-value database", func(p projection) bool { return p.dbGCI >= 100000 }},
		{"Solid database value", func(p projection) bool { return p.dbGCI >= 50000 }},
		{"Growing database", func(p projection) bool { return p.databaseSize >= 1000 }},
	},
	{
		{"Strong lead flow", func(p projection) bool { return p.yearlyNewLeadGCI >= 50000 }},
		{"Good lead generation", func(p projection) bool { return p.yearlyNewLeadGCI >= 20000 }},
		{"Active lead generation", func(p projection) bool { return p.monthlyNewLeads >= 10 }},
	},
	{
		{"High GCI per deal", func(p projection) bool { return p.gciPerDeal >= 20000 }},
		{"Good GCI per deal", func(p projection) bool { return p.gciPerDeal >= 12500 }},
	},
	{
		{"ISA cost savings opportunity", func(p projection) bool { return p.potentialSavings > 0 }},
	},
	{
		{"Significant time savings", func(p projection) bool { return p.hoursSavedYearly >= 200 }},
	},
}

// fitFactors returns the qualitative labels that apply to a projection,
// or the fallback label alone when none do.
func fitFactors(p projection) []string {
	factors := make([]string, 0, len(factorCategories))
	for _, rules := range factorCategories {
		for _, rule := range rules {
			if rule.when(p) {
				factors = append(factors, rule.label)
				break
			}
		}
	}
	if len(factors) == 0 {
		return []string{FallbackFactor}
	}
	return factors
}
