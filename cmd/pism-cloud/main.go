package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/pism/pism-cloud/internal/config"
	"github.com/pism/pism-cloud/internal/storage"
	"github.com/pism/pism-cloud/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pism-cloud",
		Usage: "Stages inputs, runs PISM, uploads results to object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			level := c.String("log-level")
			if level == "" {
				level = config.Load().App.LogLevel
			}
			logger.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			runCommand(),
			executeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("pism-cloud failed")
		os.Exit(1)
	}
}

func newS3Client() (*storage.S3Client, error) {
	cfg := config.Load()
	return storage.NewS3Client(storage.S3Config{
		Endpoint: cfg.S3.Endpoint,
		Region:   cfg.S3.Region,
		UseSSL:   cfg.S3.UseSSL,
	}, nil)
}
