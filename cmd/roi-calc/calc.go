// cmd/roi-calc/calc.go
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"roi-assessment-workers/internal/common/validation"
	"roi-assessment-workers/pkg/roi"
)

type calcFlags struct {
	format     string
	out        string
	benchmarks string
}

func newCalcCmd() *cobra.Command {
	f := &calcFlags{}

	cmd := &cobra.Command{
		Use:   "calc <answers-file>",
		Short: "Compute an assessment from a YAML or JSON answers file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(args[0], f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.benchmarks, "benchmarks", "", "YAML or JSON benchmark profile (default: built-in)")

	return cmd
}

func runCalc(answersPath string, f *calcFlags, stdout io.Writer) error {
	if f.format != "text" && f.format != "json" {
		return exitError(2, "unknown format %q: want text or json", f.format)
	}

	raw, err := loadAnswers(answersPath)
	if err != nil {
		return exitError(3, "failed to load answers: %v", err)
	}

	shape, err := validation.ValidateAnswersShape(raw)
	if err != nil {
		return exitError(3, "failed to validate answers: %v", err)
	}
	if !shape.Valid {
		return exitError(2, "invalid answers:\n  %s", strings.Join(shape.GetErrorMessages(), "\n  "))
	}

	answers, fieldErrs := validation.DecodeAnswers(raw)
	if len(fieldErrs) > 0 {
		msgs := make([]string, len(fieldErrs))
		for i, e := range fieldErrs {
			msgs[i] = e.String()
		}
		return exitError(2, "invalid answers:\n  %s", strings.Join(msgs, "\n  "))
	}

	benchmarks, err := loadBenchmarks(f.benchmarks)
	if err != nil {
		return exitError(3, "failed to load benchmarks: %v", err)
	}

	result := roi.Compute(answers.AssessmentInput(), benchmarks)

	var output string
	switch f.format {
	case "json":
		output, err = renderJSON(result)
		if err != nil {
			return exitError(1, "failed to render result: %v", err)
		}
	default:
		output = renderText(result)
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return exitError(3, "failed to write output: %v", err)
		}
		return nil
	}
	_, err = io.WriteString(stdout, output)
	return err
}

// loadAnswers reads a flat answers document. JSON is valid YAML, so one
// decoder covers both.
func loadAnswers(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return raw, nil
}

func loadBenchmarks(path string) (roi.BenchmarkConfig, error) {
	if path == "" {
		return roi.DefaultBenchmarks(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return roi.BenchmarkConfig{}, err
	}

	// Start from the defaults so a file may override a subset of fields.
	b := roi.DefaultBenchmarks()
	if err := decodeBenchmarks(path, data, &b); err != nil {
		return roi.BenchmarkConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return roi.BenchmarkConfig{}, err
	}
	return b, nil
}

// decodeBenchmarks reads .json files with the camelCase json keys and
// everything else with the snake_case yaml keys. Unknown keys are rejected.
func decodeBenchmarks(path string, data []byte, b *roi.BenchmarkConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(b)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(b); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
