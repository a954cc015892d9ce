package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tinyshot/internal/analyze"
	"github.com/dtnitsch/tinyshot/internal/compress"
	"github.com/dtnitsch/tinyshot/internal/restore"
	"github.com/dtnitsch/tinyshot/internal/runs"
	"github.com/dtnitsch/tinyshot/models"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "path to the snapshot database (default: next to the binary)",
	}
	quietFlag := &cli.BoolFlag{
		Name:  "quiet",
		Usage: "only log errors",
	}

	app := &cli.App{
		Name:  "tinyshot",
		Usage: "compress captured HTML pages into compact LLM-ready snapshots",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "compress HTML files into snapshot artifacts",
				ArgsUsage: "FILE [FILE...] (use - for stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-dir",
						Value: "snapshots",
						Usage: "directory for snapshot artifacts and the run summary",
					},
					&cli.IntFlag{
						Name:  "workers",
						Value: 4,
						Usage: "number of concurrent compression workers",
					},
					&cli.IntFlag{
						Name:  "max-text",
						Value: models.DefaultMaxTextLength,
						Usage: "maximum characters of visible text per snapshot",
					},
					&cli.IntFlag{
						Name:  "max-elements",
						Value: models.DefaultMaxElementCount,
						Usage: "maximum interactive elements per snapshot",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "element filter strategy, e.g. \"type:btn|link\"",
					},
					&cli.IntFlag{
						Name:  "cache-capacity",
						Usage: "parsed-document cache capacity (0 = default)",
					},
					dbFlag,
					quietFlag,
				},
				Action: compress.Action,
			},
			{
				Name:  "restore",
				Usage: "render a snapshot back into a semantic HTML skeleton",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "snapshot JSON file (use - for stdin)",
					},
					&cli.Int64Flag{
						Name:  "snapshot-id",
						Usage: "load the snapshot from the database instead",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "write HTML here instead of stdout",
					},
					dbFlag,
					quietFlag,
				},
				Action: restore.Action,
			},
			{
				Name:  "analyze",
				Usage: "compute content metrics for a snapshot or raw HTML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "input",
						Usage: "snapshot JSON file (use - for stdin)",
					},
					&cli.StringFlag{
						Name:  "html",
						Usage: "raw HTML file to compress and analyze",
					},
					quietFlag,
				},
				Action: analyze.Action,
			},
			{
				Name:  "runs",
				Usage: "list recorded compress runs",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "run-id",
						Usage: "list the snapshots of one run",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum runs to list",
					},
					dbFlag,
				},
				Action: runs.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
