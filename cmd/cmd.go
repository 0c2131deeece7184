// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a configuration file from the template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the new configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// searchCommand handles catalog search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the track catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks to print",
				Value: 10,
			},
		},
		Action: r.Search,
	}
}

// roomCommand handles one-shot room operations against the local database.
func roomCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "room",
		Usage: "Room queue operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print a room's queue, highest votes first",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "room",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown, or csv",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RoomList,
			},
			{
				Name:  "add",
				Usage: "Add a song to a room's queue",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "room",
					},
					&cli.StringArg{
						Name: "title",
					},
				},
				Action: r.RoomAdd,
			},
			{
				Name:  "vote",
				Usage: "Vote a song up or down",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "down",
						Usage: "Vote down instead of up",
					},
				},
				Action: r.RoomVote,
			},
		},
	}
}

// serveCommand starts the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the party playlist HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive rooms.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Join a room in the interactive terminal UI",
		Action:  r.TUI,
	}
}
