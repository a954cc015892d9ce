// Package runs implements the `runs` CLI action: list recorded compress
// runs and their snapshots.
package runs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tinyshot/pkg/db"
)

func Action(c *cli.Context) error {
	database, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.IsSet("run-id") {
		return listSnapshots(database, c.Int64("run-id"))
	}
	return listRuns(database, c.Int("limit"))
}

func listRuns(database *db.DB, limit int) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY\tINPUTS\tOK\tFAILED\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n",
			r.RunID, r.RunKey, r.InputCount, r.Success, r.Failed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func listSnapshots(database *db.DB, runID int64) error {
	snaps, err := database.ListSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Printf("Run %d has no snapshots\n", runID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTITLE\tELEMENTS\tTOKENS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
			s.SnapshotID, s.Source, s.Title, s.ElementCount, s.EstimatedTokens)
	}
	return w.Flush()
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
