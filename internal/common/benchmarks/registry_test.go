// internal/common/benchmarks/registry_test.go
package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roi-assessment-workers/pkg/roi"
)

func premiumProfile() roi.BenchmarkConfig {
	p := roi.DefaultBenchmarks()
	p.VoiceAIMonthlyCost = 900
	p.DatabasePickupRate = 0.25
	return p
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry("Standard", map[string]roi.BenchmarkConfig{
		"standard": roi.DefaultBenchmarks(),
		" Premium ": premiumProfile(),
	}, SourceConfig)
	require.NoError(t, err)

	assert.Equal(t, "standard", reg.DefaultID())
	assert.Equal(t, []string{"premium", "standard"}, reg.ProfileIDs())
	assert.Equal(t, SourceConfig, reg.Source())
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry("", map[string]roi.BenchmarkConfig{"standard": roi.DefaultBenchmarks()}, SourceConfig)
	assert.Error(t, err)

	_, err = NewRegistry("standard", map[string]roi.BenchmarkConfig{"premium": premiumProfile()}, SourceConfig)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	bad := roi.DefaultBenchmarks()
	bad.AppointmentToDeal = 1.5
	_, err = NewRegistry("standard", map[string]roi.BenchmarkConfig{"standard": bad}, SourceConfig)
	assert.ErrorContains(t, err, "appointmentToDeal")
}

func TestRegistry_Resolve(t *testing.T) {
	reg, err := NewRegistry("standard", map[string]roi.BenchmarkConfig{
		"standard": roi.DefaultBenchmarks(),
		"premium":  premiumProfile(),
	}, SourceConfig)
	require.NoError(t, err)

	id, profile, err := reg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "standard", id)
	assert.Equal(t, roi.DefaultBenchmarks(), profile)

	id, profile, err = reg.Resolve("PREMIUM")
	require.NoError(t, err)
	assert.Equal(t, "premium", id)
	assert.Equal(t, 900.0, profile.VoiceAIMonthlyCost)

	_, _, err = reg.Resolve("enterprise")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRegistry_ProfilesIsACopy(t *testing.T) {
	reg, err := NewRegistry("standard", map[string]roi.BenchmarkConfig{"standard": roi.DefaultBenchmarks()}, SourceConfig)
	require.NoError(t, err)

	profiles := reg.Profiles()
	profiles["standard"] = premiumProfile()

	_, profile, err := reg.Resolve("standard")
	require.NoError(t, err)
	assert.Equal(t, roi.DefaultBenchmarks(), profile)
}
