// cmd/roi-calc/calc_test.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"roi-assessment-workers/pkg/roi"
)

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "expected exitErr, got %v", err)
	return ee.code
}

// ==========================
// calc
// ==========================

func TestRunCalc_Text(t *testing.T) {
	var out bytes.Buffer
	err := runCalc("testdata/answers.yaml", &calcFlags{format: "text"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Strong Fit (fit score 75, high)\n"))
	assert.Contains(t, text, "ROI:                  942%")
	assert.Contains(t, text, "Total GCI:            $62,500")
	assert.Contains(t, text, "Break-even deals:     0.5")
	assert.Contains(t, text, "  - Solid database value\n  - Good GCI per deal\n  - Significant time savings\n")
	assert.NotContains(t, text, "New lead response")
	assert.NotContains(t, text, "Staff comparison")
}

func TestRunCalc_JSONWithCoercedAnswers(t *testing.T) {
	var out bytes.Buffer
	err := runCalc("testdata/answers.json", &calcFlags{format: "json"}, &out)
	require.NoError(t, err)

	var result roi.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))

	assert.Equal(t, int64(13500), result.GCIPerDeal)
	assert.Equal(t, int64(32400), result.DBGCI)
	assert.InDelta(t, 0.16, result.MonthlyNewLeadDeals, 0.001)
	assert.Equal(t, int64(25920), result.YearlyNewLeadGCI)
	assert.Equal(t, int64(872), result.ROI)
	assert.Equal(t, int64(30000), result.YearlyStaffCost)
	assert.Equal(t, int64(24000), result.PotentialSavings)
	assert.Equal(t, roi.FitLevelHigh, result.FitLevel)
}

func TestRunCalc_BenchmarksFile(t *testing.T) {
	var out bytes.Buffer
	err := runCalc("testdata/answers.yaml", &calcFlags{format: "json", benchmarks: "testdata/premium.yaml"}, &out)
	require.NoError(t, err)

	var result roi.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, int64(12000), result.YearlyServiceCost)
	assert.Equal(t, int64(421), result.ROI)
	assert.Equal(t, 65, result.FitScore)
}

func TestRunCalc_OutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")

	var out bytes.Buffer
	err := runCalc("testdata/answers.yaml", &calcFlags{format: "text", out: path}, &out)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Strong Fit")
}

func TestRunCalc_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		flags    calcFlags
		wantCode int
		wantMsg  string
	}{
		{name: "bad format", path: "testdata/answers.yaml", flags: calcFlags{format: "xml"}, wantCode: 2, wantMsg: "unknown format"},
		{name: "missing file", path: "testdata/nope.yaml", flags: calcFlags{format: "text"}, wantCode: 3, wantMsg: "failed to load answers"},
		{name: "invalid answers", path: "testdata/invalid.yaml", flags: calcFlags{format: "text"}, wantCode: 2, wantMsg: "databaseSize"},
		{name: "missing benchmarks", path: "testdata/answers.yaml", flags: calcFlags{format: "text", benchmarks: "testdata/nope.yaml"}, wantCode: 3, wantMsg: "failed to load benchmarks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCalc(tt.path, &tt.flags, &out)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadBenchmarks_RejectsInvalidRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_pickup_rate: 1.5\n"), 0644))

	_, err := loadBenchmarks(path)
	assert.ErrorContains(t, err, "databasePickupRate")
}

func TestLoadBenchmarks_JSONOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"voiceAIMonthlyCost": 1000, "newLeadPickupRate": 0.9}`), 0644))

	b, err := loadBenchmarks(path)
	require.NoError(t, err)

	want := roi.DefaultBenchmarks()
	want.VoiceAIMonthlyCost = 1000
	want.NewLeadPickupRate = 0.9
	assert.Equal(t, want, b)
}

func TestLoadBenchmarks_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json", file: "b.json", content: `{"voice_ai_monthly_cost": 1000}`},
		{name: "yaml", file: "b.yaml", content: "voiceAIMonthlyCost: 1000\n"},
		{name: "yaml typo", file: "b.yml", content: "voice_ai_monthy_cost: 1000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := loadBenchmarks(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse")
		})
	}
}

func TestLoadBenchmarks_EmptyYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	b, err := loadBenchmarks(path)
	require.NoError(t, err)
	assert.Equal(t, roi.DefaultBenchmarks(), b)
}

// ==========================
// benchmarks
// ==========================

func TestWriteBenchmarks_RoundTrips(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeBenchmarks(&out, roi.DefaultBenchmarks()))
	assert.Contains(t, out.String(), "voice_ai_monthly_cost: 500")

	var decoded roi.BenchmarkConfig
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, roi.DefaultBenchmarks(), decoded)
}

// ==========================
// render
// ==========================

func TestRenderText_Sections(t *testing.T) {
	r := roi.Compute(roi.Input{
		DatabaseSize:            1000,
		AvgPrice:                300000,
		CommissionRatePercent:   3,
		MonthlyNewLeads:         50,
		ProspectingHoursPerWeek: 10,
		HasStaffFollowUp:        true,
		StaffMonthlyCost:        3000,
	}, roi.DefaultBenchmarks())

	text := renderText(r)
	assert.Contains(t, text, "New lead response")
	assert.Contains(t, text, "Deals/month:          0.20")
	assert.Contains(t, text, "Staff comparison")
	assert.Contains(t, text, "Current staff cost:   $36,000/year")
}

func TestCommas(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{62500, "62,500"},
		{1234567, "1,234,567"},
		{-6000, "-6,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commas(tt.in))
	}
}
