// Package common holds small helpers shared by the CLI actions.
package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// ReadInput reads a file, or stdin when path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// GenerateRunKey creates a timestamp-first run key from the input paths.
// Format: YYYY-MM-DDTHH-MM-{hash}. The hash is derived from the sorted path
// list, so re-running the same inputs in the same minute maps to one run:
// the later invocation reuses that run's row, its snapshots join the run,
// and UpdateRunStats overwrites the earlier stats.
func GenerateRunKey(inputs []string) string {
	normalized := make([]string, len(inputs))
	copy(normalized, inputs)
	sort.Strings(normalized)

	h := sha256.New()
	for _, input := range normalized {
		h.Write([]byte(input))
		h.Write([]byte("\n"))
	}
	shortHash := hex.EncodeToString(h.Sum(nil)[:6])

	timestamp := time.Now().Format("2006-01-02T15-04")
	return fmt.Sprintf("%s-%s", timestamp, shortHash)
}
