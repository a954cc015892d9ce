package compress

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dtnitsch/tinyshot/internal/common"
	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/caching"
	"github.com/dtnitsch/tinyshot/pkg/compress"
	"github.com/dtnitsch/tinyshot/pkg/db"
	"github.com/dtnitsch/tinyshot/pkg/storage"
)

func run(logger *slog.Logger, config *models.CompressConfig, compressor *compress.Compressor, store *storage.Storage, strategy *Strategy, database *db.DB, runID int64) ([]Result, error) {
	logger.Info("Starting concurrent compress phase", "input_count", len(config.Inputs), "workers", config.WorkerCount)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.Inputs))
	results := make(chan Result, len(config.Inputs))

	for w := 1; w <= config.WorkerCount; w++ {
		wg.Add(1)
		go worker(w, logger, config, compressor, store, strategy, database, runID, &wg, jobs, results)
	}

	for _, path := range config.Inputs {
		jobs <- Job{Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All compress workers finished")

	allResults := make([]Result, 0, len(config.Inputs))
	var runErr error
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more jobs failed")
		}
	}
	return allResults, runErr
}

func worker(id int, logger *slog.Logger, config *models.CompressConfig, compressor *compress.Compressor, store *storage.Storage, strategy *Strategy, database *db.DB, runID int64, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "path", job.Path)
		result := Result{Path: job.Path}

		rawHTML, err := common.ReadInput(job.Path)
		if err != nil {
			logger.Error("Error reading input", "worker_id", id, "path", job.Path, "error", err)
			result.Error = err
			result.ErrorType = "read_error"
			results <- result
			continue
		}

		snap, err := compressor.CompressWith(string(rawHTML), models.Options{
			MaxTextLength:   config.MaxTextLength,
			MaxElementCount: config.MaxElementCount,
		})
		if err != nil {
			logger.Error("Error compressing input", "worker_id", id, "path", job.Path, "error", err)
			result.Error = err
			if errors.Is(err, compress.ErrInputTooLarge) {
				result.ErrorType = "input_too_large"
			} else {
				result.ErrorType = "compress_error"
			}
			results <- result
			continue
		}

		snap = FilterSnapshot(snap, strategy)

		outPath := getSavePath(config.OutputDir, job.Path)
		if err := store.SaveSnapshot(outPath, snap); err != nil {
			logger.Error("Error saving snapshot", "worker_id", id, "path", outPath, "error", err)
			result.Error = err
			result.ErrorType = "save_error"
			result.Snapshot = &snap
			results <- result
			continue
		}

		if database != nil {
			fingerprint := fmt.Sprintf("%016x", caching.Fingerprint(string(rawHTML)))
			if _, dbErr := database.InsertSnapshot(runID, job.Path, fingerprint, snap); dbErr != nil {
				logger.Warn("Failed to record snapshot in DB", "path", job.Path, "error", dbErr)
			}
		}

		if stats, statErr := store.GetFileStats(outPath); statErr == nil {
			result.FileSizeBytes = stats.SizeBytes
		}
		result.OutPath = outPath
		result.Snapshot = &snap
		results <- result
		logger.Info("Worker finished job", "worker_id", id, "path", job.Path)
	}
}

// getSavePath maps an input path to its snapshot artifact path.
func getSavePath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	if base == "-" {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+".snapshot.json")
}
