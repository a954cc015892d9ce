package models

// CompressConfig holds runtime configuration for compress operations.
// All values come from CLI flags, not external config files.
type CompressConfig struct {
	Inputs          []string
	OutputDir       string
	WorkerCount     int
	MaxTextLength   int
	MaxElementCount int
	Filter          string
}
