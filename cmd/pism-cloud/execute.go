package main

import (
	"github.com/urfave/cli/v2"

	"github.com/pism/pism-cloud/internal/bucket"
)

func executeCommand() *cli.Command {
	return &cli.Command{
		Name:  "execute",
		Usage: "Sync a bucket prefix to a local directory, run its solver scripts, sync results back",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "S3 bucket to sync with the local working directory",
				EnvVars: []string{"PISM_BUCKET"},
			},
			&cli.StringFlag{
				Name:    "bucket-prefix",
				Usage:   "Key prefix to sync with the local working directory",
				EnvVars: []string{"PISM_BUCKET_PREFIX"},
			},
			&cli.StringFlag{
				Name:  "work-dir",
				Usage: "Working directory",
				Value: ".",
			},
		},
		Action: func(c *cli.Context) error {
			workDir := c.String("work-dir")
			bucketName := c.String("bucket")
			prefix := c.String("bucket-prefix")

			if bucketName == "" {
				return bucket.RunScripts(c.Context, workDir)
			}

			store, err := newS3Client()
			if err != nil {
				return err
			}

			if err := bucket.Download(c.Context, store, bucketName, prefix, workDir); err != nil {
				return err
			}
			if err := bucket.RunScripts(c.Context, workDir); err != nil {
				return err
			}
			return bucket.Upload(c.Context, store, workDir, bucketName, prefix)
		},
	}
}
