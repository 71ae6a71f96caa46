package pipeline

import (
	"context"
	"path/filepath"

	"github.com/pism/pism-cloud/internal/storage"
	"github.com/pism/pism-cloud/pkg/logger"
)

// Transfer is the subset of the storage client the pipeline drives.
type Transfer interface {
	Fetch(ctx context.Context, rawURL, destPath string) error
	Push(ctx context.Context, localPath string, dest storage.Location) error
}

// Stage downloads each input into workDir, in order. The local file name
// is the supplied override, or the final path component of the URL. The
// first failed transfer aborts staging; files already staged are left for
// the orchestrator's cleanup.
func Stage(ctx context.Context, t Transfer, inputs []InputSpec, workDir string) error {
	for _, in := range inputs {
		name := in.FileName
		if name == "" {
			var err error
			name, err = storage.DefaultFileName(in.URL)
			if err != nil {
				return err
			}
		}

		logger.Log.Info().Str("url", in.URL).Str("file", name).Msg("staging input")
		if err := t.Fetch(ctx, in.URL, filepath.Join(workDir, name)); err != nil {
			return err
		}
	}
	return nil
}
