// Package cmd is the hearth command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"Hearth/internal/config"
	"Hearth/internal/logging"

	"github.com/urfave/cli/v3"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "hearth",
	Usage:   "Hearth serves the social actions API",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if _, err := logging.Init(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		config.LogLevel,
	},
	DefaultCommand: "serve",
	Commands: []*cli.Command{
		serveCmd,
		migrateCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
