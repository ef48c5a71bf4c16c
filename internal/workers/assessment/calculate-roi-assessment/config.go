// internal/workers/assessment/calculate-roi-assessment/config.go
package calculateroiassessment

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
