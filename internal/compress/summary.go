package compress

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BuildSummary converts a worker result into its summary form.
func BuildSummary(r Result) ResultSummary {
	summary := ResultSummary{
		Path:          r.Path,
		OutPath:       r.OutPath,
		FileSizeBytes: r.FileSizeBytes,
	}
	if r.Error != nil {
		summary.Status = "failed"
		summary.Error = r.Error.Error()
		return summary
	}
	summary.Status = "success"
	if r.Snapshot != nil {
		summary.Title = r.Snapshot.Title
		summary.ElementCount = len(r.Snapshot.Elements)
		summary.EstimatedTokens = r.Snapshot.EstimatedTokens()
	}
	return summary
}

// WriteRunSummary writes the per-input summaries to run-summary.yaml in the
// output directory.
func WriteRunSummary(results []Result, outputDir string) error {
	summaries := make([]ResultSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, BuildSummary(r))
	}

	yamlBytes, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary to YAML: %w", err)
	}

	outputPath := filepath.Join(outputDir, "run-summary.yaml")
	if err := os.WriteFile(outputPath, yamlBytes, 0600); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}
