package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"Hearth/internal/config"
	"Hearth/internal/db/migrations"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the Postgres schema",
	Flags: []cli.Flag{
		config.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:   "up",
			Usage:  "Apply every pending migration",
			Action: withDB(migrations.Up),
		},
		{
			Name:   "down",
			Usage:  "Roll back the most recent migration",
			Action: withDB(migrations.Down),
		},
		{
			Name:   "status",
			Usage:  "Show the state of every migration",
			Action: withDB(migrations.Status),
		},
	},
}

func withDB(fn func(*sql.DB) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		dsn := c.String(config.DatabaseURL.Name)
		if dsn == "" {
			return fmt.Errorf("%w: DATABASE_URL", config.ErrMissingSetting)
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		if err := fn(db); err != nil {
			return err
		}
		slog.Info("migrate finished", "command", c.Name)
		return nil
	}
}
