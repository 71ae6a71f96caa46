package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pism/pism-cloud/internal/pipeline"
	"github.com/pism/pism-cloud/internal/storage"
)

const runUsageText = `pism-cloud run [--layout] PARAMETERS

The positional argument PARAMETERS is a JSON document of the form

  {"inputs": ["https://foo.com/input.nc",
              "ftp://bar.org/climate.nc",
              ["s3://bucket-name/object-name", "forcing.nc"]],
   "command": "mpiexec -n 8 pismr -i input.nc -o output.nc ...",
   "output": "s3://bucket-name/prefix/"}

Here 'inputs' is a list of URLs pointing to inputs required by 'command'.
Downloaded files are saved into the working directory using the last
component of the path in the URL as the name. Use a two-element
[URL, file_name] pair to pick a different name (see forcing.nc above).
Input URLs can use HTTP, HTTPS and FTP, plus AWS S3.

The 'command' should save outputs into the working directory. Flags in
'command' should not contain absolute paths or sub-directories.

All files generated by the command (along with its captured output) are
uploaded to 'output'. Only AWS S3 is supported there.

AWS credentials are read from ~/.aws/credentials or the environment
variables AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and, if needed,
AWS_SESSION_TOKEN.`

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Download inputs, run a command, upload the files it creates",
		UsageText: runUsageText,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "layout",
				Usage: "Create the standard PISM subdirectory skeleton before staging",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one JSON parameters argument")
			}

			params, err := pipeline.ParseParams([]byte(c.Args().First()))
			if err != nil {
				return err
			}

			store, err := newS3Client()
			if err != nil {
				return err
			}

			var opts []pipeline.Option
			if c.Bool("layout") {
				opts = append(opts, pipeline.WithSetup(pipeline.StandardLayout))
			}

			return pipeline.Run(c.Context, storage.NewClient(store), params, opts...)
		},
	}
}
