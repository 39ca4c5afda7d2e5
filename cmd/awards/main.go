package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "awards",
		Usage:  "Game awards voting service",
		Action: cli.ShowAppHelp,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path of the TOML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Before: server.loadConfig,
		Commands: []*cli.Command{
			{
				Action:      server.startApi,
				Name:        "api",
				Usage:       "Start service api",
				Category:    "Api",
				Description: `Serve every public, voter and admin API.`,
			},
			{
				Action:      server.startCron,
				Name:        "cron",
				Usage:       "Start cron jobs",
				Category:    "Worker",
				Description: `Precompute the results snapshot once voting has ended.`,
			},
			{
				Action:   server.startMigrate,
				Name:     "migrate",
				Usage:    "Migrate the database schema",
				Category: "Database",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "rollback",
						Usage: "Revert the given number of versions instead of migrating up",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
