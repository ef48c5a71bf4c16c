// internal/workers/assessment/route-assessment-followup/config.go
package routeassessmentfollowup

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
