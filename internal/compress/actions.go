// Package compress implements the `compress` CLI action: read HTML inputs,
// run the compression engine over a worker pool, and record the resulting
// snapshots as JSON artifacts, a YAML run summary, and database rows.
package compress

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tinyshot/internal/common"
	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/caching"
	"github.com/dtnitsch/tinyshot/pkg/compress"
	"github.com/dtnitsch/tinyshot/pkg/db"
	"github.com/dtnitsch/tinyshot/pkg/storage"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config := &models.CompressConfig{
		Inputs:          c.Args().Slice(),
		OutputDir:       c.String("output-dir"),
		WorkerCount:     c.Int("workers"),
		MaxTextLength:   c.Int("max-text"),
		MaxElementCount: c.Int("max-elements"),
		Filter:          c.String("filter"),
	}
	if len(config.Inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}

	strategy, err := ParseStrategy(config.Filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(2)
	}

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runKey := common.GenerateRunKey(config.Inputs)
	runID, err := database.CreateRun(runKey, len(config.Inputs))
	if err != nil {
		logger.Error("failed to create run", "error", err)
		os.Exit(2)
	}

	cache := caching.New(c.Int("cache-capacity"), 0)
	compressor := compress.New(cache, models.Options{
		MaxTextLength:   config.MaxTextLength,
		MaxElementCount: config.MaxElementCount,
	})
	store := &storage.Storage{}

	results, runErr := run(logger, config, compressor, store, strategy, database, runID)

	success, failed := 0, 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			success++
		}
	}
	if err := database.UpdateRunStats(runID, success, failed); err != nil {
		logger.Warn("failed to update run stats", "error", err)
	}

	if err := WriteRunSummary(results, config.OutputDir); err != nil {
		logger.Warn("failed to write run summary", "error", err)
	}

	output := FinalOutput{
		Status: "success",
		RunKey: runKey,
		Stats: Stats{
			TotalInputs:      len(config.Inputs),
			Successful:       success,
			Failed:           failed,
			TotalTimeSeconds: time.Since(startTime).Seconds(),
		},
	}
	for _, r := range results {
		output.Results = append(output.Results, BuildSummary(r))
	}
	if runErr != nil {
		output.Status = "partial_failure"
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))

	return nil
}

// openDatabase honors an explicit --db path, defaulting to the database
// next to the binary.
func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
