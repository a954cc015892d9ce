// Package restore implements the `restore` CLI action: render a stored
// snapshot back into a semantic HTML skeleton.
package restore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tinyshot/internal/common"
	"github.com/dtnitsch/tinyshot/models"
	"github.com/dtnitsch/tinyshot/pkg/db"
	"github.com/dtnitsch/tinyshot/pkg/restore"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var snap models.Snapshot
	switch {
	case c.IsSet("snapshot-id"):
		database, err := openDatabase(c)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(2)
		}
		defer database.Close()

		snap, err = database.GetSnapshot(c.Int64("snapshot-id"))
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
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
		return fmt.Errorf("provide --input or --snapshot-id")
	}

	html := restore.Restore(snap)

	if outPath := c.String("output"); outPath != "" {
		if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.Info("Restored snapshot", "output", outPath, "title", snap.Title)
		return nil
	}
	fmt.Print(html)
	return nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
