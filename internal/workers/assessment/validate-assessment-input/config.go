// internal/workers/assessment/validate-assessment-input/config.go
package validateassessmentinput

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultBenchmarkProfile fills in an empty benchmarkProfile variable.
	DefaultBenchmarkProfile string
	// ThrowOnInvalid throws ASSESSMENT_VALIDATION_FAILED instead of
	// completing the job with isValid=false.
	ThrowOnInvalid bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                 10 * time.Second,
		DefaultBenchmarkProfile: "standard",
		ThrowOnInvalid:          true,
	}
}
