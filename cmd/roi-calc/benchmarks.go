// cmd/roi-calc/benchmarks.go
package main

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"roi-assessment-workers/pkg/roi"
)

func newBenchmarksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "benchmarks",
		Short: "Print the built-in benchmark profile as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeBenchmarks(cmd.OutOrStdout(), roi.DefaultBenchmarks())
		},
	}
}

func writeBenchmarks(w io.Writer, b roi.BenchmarkConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return err
	}
	return enc.Close()
}
