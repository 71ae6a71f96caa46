package pipeline

import (
	"context"
	"path/filepath"

	"github.com/pism/pism-cloud/internal/storage"
	"github.com/pism/pism-cloud/pkg/logger"
)

// Collect uploads each named file from workDir to the destination prefix,
// in order. The first failed upload aborts the run; files uploaded before
// the failure stay uploaded.
func Collect(ctx context.Context, t Transfer, workDir string, files []string, destURL string) error {
	for _, name := range files {
		dest, err := storage.JoinForUpload(destURL, name)
		if err != nil {
			return err
		}

		logger.Log.Info().Str("file", name).Str("dest", dest.String()).Msg("uploading result")
		if err := t.Push(ctx, filepath.Join(workDir, name), dest); err != nil {
			return err
		}
	}
	return nil
}
