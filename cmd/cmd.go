// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// rankCommand runs the ranking pipeline over one or more categories
func rankCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rank",
		Usage: "Rank lead artists of each category and write one report per category",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "Category to rank (repeatable, defaults to source.categories)",
			},
			&cli.IntFlag{
				Name:    "rows",
				Aliases: []string{"n"},
				Usage:   "Data rows per report",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (xlsx, csv, md)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory for reports",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Market for category playlists (e.g. US)",
			},
			&cli.BoolFlag{
				Name:  "incremental",
				Usage: "Re-render the report after every page",
			},
			&cli.StringFlag{
				Name:  "on-error",
				Usage: "Failure policy across categories (abort, continue)",
			},
			&cli.BoolFlag{
				Name:  "preview",
				Usage: "Print each ranking as a table after its report is written",
			},
			&cli.StringFlag{
				Name:  "fixture",
				Usage: "Read pages from a JSON fixture file instead of Spotify",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output run results as JSON",
			},
		},
		Action: r.Rank,
	}
}

// historyCommand lists recorded runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to list",
				Value: 20,
			},
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "Only runs of this category",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// showCommand prints the stored ranking of one run
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the stored ranking of a run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "run",
				Usage: "Run ID or 8-character prefix",
			},
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "Show the latest completed run of this category",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of entries to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Show,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "check",
				Usage:  "Validate the effective configuration",
				Action: r.ConfigCheck,
			},
		},
	}
}

// setupCommand handles setup operations for the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}
