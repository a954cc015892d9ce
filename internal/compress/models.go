package compress

import (
	"github.com/dtnitsch/tinyshot/models"
)

type Job struct {
	Path string
}

// Result holds the outcome of a processed job.
type Result struct {
	Path          string
	OutPath       string
	Snapshot      *models.Snapshot
	Error         error
	ErrorType     string
	FileSizeBytes int64
}

// ResultSummary holds summary data for a single compressed input.
type ResultSummary struct {
	Path            string `yaml:"path" json:"path"`
	OutPath         string `yaml:"out_path,omitempty" json:"out_path,omitempty"`
	Status          string `yaml:"status" json:"status"`
	Error           string `yaml:"error,omitempty" json:"error,omitempty"`
	Title           string `yaml:"title,omitempty" json:"title,omitempty"`
	ElementCount    int    `yaml:"element_count" json:"element_count"`
	EstimatedTokens int    `yaml:"estimated_tokens" json:"estimated_tokens"`
	FileSizeBytes   int64  `yaml:"file_size_bytes,omitempty" json:"file_size_bytes,omitempty"`
}

// FinalOutput is the structured stdout output for the entire run.
type FinalOutput struct {
	Status  string          `json:"status"`
	RunKey  string          `json:"run_key"`
	Results []ResultSummary `json:"results"`
	Stats   Stats           `json:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalInputs      int     `json:"total_inputs"`
	Successful       int     `json:"successful"`
	Failed           int     `json:"failed"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
}
