// pkg/roi/models_test.go
package roi

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(in *Input)
		expectError bool
		errContains []string
	}{
		{
			name:   "valid reference input",
			mutate: func(in *Input) {},
		},
		{
			name: "valid with staff follow-up",
			mutate: func(in *Input) {
				in.HasStaffFollowUp = true
				in.StaffMonthlyCost = 4000
			},
		},
		{
			name:        "non-positive price",
			mutate:      func(in *Input) { in.AvgPrice = 0 },
			expectError: true,
			errContains: []string{"avgPrice"},
		},
		{
			name:        "commission above 100",
			mutate:      func(in *Input) { in.CommissionRatePercent = 120 },
			expectError: true,
			errContains: []string{"commissionRatePercent"},
		},
		{
			name: "staff cost without staff",
			mutate: func(in *Input) {
				in.StaffMonthlyCost = 1500
			},
			expectError: true,
			errContains: []string{"staffMonthlyCost: must be 0 when hasStaffFollowUp is false"},
		},
		{
			name: "multiple violations are reported",
			mutate: func(in *Input) {
				in.DatabaseSize = -1
				in.MonthlyNewLeads = -2
				in.ProspectingHoursPerWeek = -3
			},
			expectError: true,
			errContains: []string{"databaseSize", "monthlyNewLeads", "prospectingHoursPerWeek"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(&input)

			err := input.Validate()
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, fragment := range tt.errContains {
				assert.Contains(t, err.Error(), fragment)
			}
		})
	}
}

func TestInput_Validate_FieldErrors(t *testing.T) {
	input := createTestInput()
	input.AvgPrice = 0
	input.CommissionRatePercent = 150
	input.StaffMonthlyCost = -5

	err := input.Validate()
	require.Error(t, err)

	fieldErrs, ok := err.(validation.Errors)
	require.True(t, ok, "expected ozzo field errors, got %T", err)
	assert.Len(t, fieldErrs, 3)
	assert.Contains(t, fieldErrs, "avgPrice")
	assert.Contains(t, fieldErrs, "commissionRatePercent")
	assert.Contains(t, fieldErrs, "staffMonthlyCost")
}

func TestBenchmarkConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultBenchmarks().Validate())

	b := DefaultBenchmarks()
	b.NewLeadPickupRate = 1.2
	assert.ErrorContains(t, b.Validate(), "newLeadPickupRate")

	b = DefaultBenchmarks()
	b.VoiceAIMonthlyCost = -1
	assert.ErrorContains(t, b.Validate(), "voiceAIMonthlyCost")

	assert.True(t, BenchmarkConfig{}.IsZero())
	assert.False(t, DefaultBenchmarks().IsZero())
}
