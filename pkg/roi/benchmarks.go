// pkg/roi/benchmarks.go
package roi

import "fmt"

// BenchmarkConfig holds the industry rates and costs the engine projects through.
// Values are copied into every Compute call, so a config is never shared mutably.
type BenchmarkConfig struct {
	NewLeadPickupRate   float64 `json:"newLeadPickupRate" yaml:"new_lead_pickup_rate" mapstructure:"new_lead_pickup_rate"`
	DatabasePickupRate  float64 `json:"databasePickupRate" yaml:"database_pickup_rate" mapstructure:"database_pickup_rate"`
	AnswerToAppointment float64 `json:"answerToAppointment" yaml:"answer_to_appointment" mapstructure:"answer_to_appointment"`
	AppointmentToDeal   float64 `json:"appointmentToDeal" yaml:"appointment_to_deal" mapstructure:"appointment_to_deal"`
	VoiceAIMonthlyCost  float64 `json:"voiceAIMonthlyCost" yaml:"voice_ai_monthly_cost" mapstructure:"voice_ai_monthly_cost"`
	AvgAgentHourlyValue float64 `json:"avgAgentHourlyValue" yaml:"avg_agent_hourly_value" mapstructure:"avg_agent_hourly_value"`
}

// DefaultBenchmarks returns the stock industry benchmarks.
func DefaultBenchmarks() BenchmarkConfig {
	return BenchmarkConfig{
		NewLeadPickupRate:   0.40,
		DatabasePickupRate:  0.20,
		AnswerToAppointment: 0.05,
		AppointmentToDeal:   0.20,
		VoiceAIMonthlyCost:  500,
		AvgAgentHourlyValue: 150,
	}
}

// Validate checks that every rate lies in [0,1] and every cost is non-negative.
func (b BenchmarkConfig) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"newLeadPickupRate", b.NewLeadPickupRate},
		{"databasePickupRate", b.DatabasePickupRate},
		{"answerToAppointment", b.AnswerToAppointment},
		{"appointmentToDeal", b.AppointmentToDeal},
	}
	for _, r := range rates {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", r.name, r.value)
		}
	}
	if b.VoiceAIMonthlyCost < 0 {
		return fmt.Errorf("voiceAIMonthlyCost must be non-negative, got %v", b.VoiceAIMonthlyCost)
	}
	if b.AvgAgentHourlyValue < 0 {
		return fmt.Errorf("avgAgentHourlyValue must be non-negative, got %v", b.AvgAgentHourlyValue)
	}
	return nil
}

// IsZero reports whether no field has been set.
func (b BenchmarkConfig) IsZero() bool {
	return b == BenchmarkConfig{}
}
