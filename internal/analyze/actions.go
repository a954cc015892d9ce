// Package analyze implements the `analyze` CLI action: compute content
// metrics (words, tokens, keywords, language, readability metadata) for a
// snapshot or a raw HTML input.
package analyze

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/tinyshot/internal/common"
	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/analyze"
	"github.com/dtnitsch/tinyshot/pkg/caching"
	"github.com/dtnitsch/tinyshot/pkg/compress"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var snap models.Snapshot
	var rawHTML string

	switch {
	case c.String("html") != "":
		data, err := common.ReadInput(c.String("html"))
		if err != nil {
			return err
		}
		rawHTML = string(data)

		compressor := compress.New(caching.New(0, 0), models.Options{})
		snap, err = compressor.Compress(rawHTML)
		if err != nil {
			return fmt.Errorf("failed to compress input: %w", err)
		}
	case c.String("input") != "":
		data, err := common.ReadInput(c.String("input"))
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("failed to decode snapshot: %w", err)
		}
	default:
		return fmt.Errorf("provide --input (snapshot JSON) or --html (raw page)")
	}

	logger.Info("Analyzing snapshot", "title", snap.Title, "elements", len(snap.Elements))
	report := analyze.New().Analyze(snap, rawHTML)

	yamlBytes, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Print(string(yamlBytes))
	return nil
}
