// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-assessment-workers/pkg/roi"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
workers:
  calculate-roi-assessment:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, DefaultBenchmarkProfile, cfg.Benchmarks.DefaultProfile)
	assert.Equal(t, DefaultBenchmarkKey, cfg.Benchmarks.CacheKey)
	assert.Equal(t, roi.DefaultBenchmarks(), cfg.Benchmarks.Defaults)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Database.Postgres.Enabled())
	assert.False(t, cfg.Database.Redis.Enabled())

	worker := cfg.Workers["calculate-roi-assessment"]
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_PartialProfilesInheritDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
benchmarks:
  defaults:
    avg_agent_hourly_value: 100
  profiles:
    premium:
      voice_ai_monthly_cost: 1000
    starter:
      database_pickup_rate: 0.1
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	defaults := roi.DefaultBenchmarks()
	defaults.AvgAgentHourlyValue = 100
	assert.Equal(t, defaults, cfg.Benchmarks.Defaults)

	premium := defaults
	premium.VoiceAIMonthlyCost = 1000
	assert.Equal(t, premium, cfg.Benchmarks.Profiles["premium"])

	starter := defaults
	starter.DatabasePickupRate = 0.1
	assert.Equal(t, starter, cfg.Benchmarks.Profiles["starter"])
}

func TestLoadFromFile_BenchmarkProfiles(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
benchmarks:
  default_profile: standard
  cache_ttl: 60
  defaults:
    new_lead_pickup_rate: 0.4
    database_pickup_rate: 0.2
    answer_to_appointment: 0.05
    appointment_to_deal: 0.2
    voice_ai_monthly_cost: 500
    avg_agent_hourly_value: 150
  profiles:
    premium:
      new_lead_pickup_rate: 0.5
      database_pickup_rate: 0.25
      answer_to_appointment: 0.06
      appointment_to_deal: 0.2
      voice_ai_monthly_cost: 900
      avg_agent_hourly_value: 200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Contains(t, cfg.Benchmarks.Profiles, "premium")
	assert.Equal(t, 900.0, cfg.Benchmarks.Profiles["premium"].VoiceAIMonthlyCost)
	assert.Equal(t, 0.25, cfg.Benchmarks.Profiles["premium"].DatabasePickupRate)
	assert.Equal(t, int64(60), int64(cfg.Benchmarks.BenchmarkCacheTTL().Seconds()))
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ZEEBE_GATEWAY", "zeebe:26500")
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	path := writeConfig(t, `
camunda:
  broker_address: ${TEST_ZEEBE_GATEWAY}
database:
  postgres:
    host: localhost
    database: roi
    user: roi
    password: ${TEST_DB_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "dbname=roi")
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "port=5432")
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "logging:\n  level: debug\n",
			wantErr: "camunda.broker_address",
		},
		{
			name: "postgres without database",
			body: `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    user: roi
`,
			wantErr: "database.postgres.database",
		},
		{
			name: "invalid profile rate",
			body: `
camunda:
  broker_address: localhost:26500
benchmarks:
  profiles:
    broken:
      new_lead_pickup_rate: 4
`,
			wantErr: "benchmarks.profiles.broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ZEEBE_ADDRESS", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"route-assessment-followup": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "route-assessment-followup"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "route-assessment-followup").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown-worker").MaxJobsActive)
	assert.Equal(t, int64(1500), GetDuration(1500).Milliseconds())
}
