// Package pipeline stages remote inputs into a scratch directory, runs an
// external command against them, and uploads whatever the command produced.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pism/pism-cloud/pkg/logger"
)

type options struct {
	setup func(dir string) error
}

// Option configures a pipeline run.
type Option func(*options)

// WithSetup registers a hook that prepares the working directory after it
// is created and before staging begins.
func WithSetup(fn func(dir string) error) Option {
	return func(o *options) {
		o.setup = fn
	}
}

// Run drives one full pipeline: create a scratch directory, stage inputs,
// run the command, upload the files it created. The scratch directory is
// removed on every exit path.
func Run(ctx context.Context, t Transfer, params Params, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	runID := uuid.NewString()
	workDir := filepath.Join(os.TempDir(), "pism-cloud-"+runID)
	if err := os.Mkdir(workDir, 0o700); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}

	log := logger.Log.With().Str("run_id", runID).Logger()
	log.Info().Str("dir", workDir).Msg("created scratch directory")

	defer func() {
		log.Info().Str("dir", workDir).Msg("removing scratch directory")
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn().Err(err).Str("dir", workDir).Msg("failed to remove scratch directory")
		}
	}()

	if o.setup != nil {
		if err := o.setup(workDir); err != nil {
			return fmt.Errorf("preparing working directory: %w", err)
		}
	}

	if err := Stage(ctx, t, params.Inputs, workDir); err != nil {
		return err
	}

	created, err := Execute(ctx, params.Command, workDir)
	if err != nil {
		return err
	}
	log.Info().Strs("files", created).Msg("command generated files")

	return Collect(ctx, t, workDir, created, params.Output)
}
