// Package bucket mirrors an object-storage prefix to and from a local
// working directory and runs the solver scripts found inside it.
package bucket

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pism/pism-cloud/internal/storage"
	"github.com/pism/pism-cloud/pkg/logger"
)

// Download fetches every object under prefix into workDir, preserving the
// key hierarchy below the prefix.
func Download(ctx context.Context, store storage.ObjectStorage, bucketName, prefix, workDir string) error {
	objects, err := store.ListObjects(ctx, bucketName, prefix)
	if err != nil {
		return fmt.Errorf("listing s3://%s/%s: %w", bucketName, prefix, err)
	}

	logger.Log.Info().Str("bucket", bucketName).Str("prefix", prefix).Int("objects", len(objects)).Msg("downloading bucket contents")

	for _, obj := range objects {
		rel := strings.TrimPrefix(strings.TrimPrefix(obj.Key, prefix), "/")
		if rel == "" {
			continue
		}
		dest := filepath.Join(workDir, filepath.FromSlash(rel))
		if err := store.DownloadObject(ctx, bucketName, obj.Key, dest); err != nil {
			return fmt.Errorf("downloading s3://%s/%s: %w", bucketName, obj.Key, err)
		}
	}
	return nil
}

// Upload pushes every regular file under workDir to the bucket, keyed by
// its path relative to workDir below the prefix.
func Upload(ctx context.Context, store storage.ObjectStorage, workDir, bucketName, prefix string) error {
	logger.Log.Info().Str("dir", workDir).Str("bucket", bucketName).Str("prefix", prefix).Msg("uploading working directory")

	return filepath.WalkDir(workDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(workDir, p)
		if err != nil {
			return err
		}
		key := path.Join(prefix, filepath.ToSlash(rel))
		if err := store.UploadObject(ctx, p, bucketName, key); err != nil {
			return fmt.Errorf("uploading %s to s3://%s/%s: %w", rel, bucketName, key, err)
		}
		return nil
	})
}

// RunScripts finds every *.sh file inside run_scripts directories below
// workDir and runs each with bash -ex, stopping at the first failure.
// Script output goes straight to the process's stdout and stderr.
func RunScripts(ctx context.Context, workDir string) error {
	scripts, err := findScripts(workDir)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		logger.Log.Info().Str("script", script).Msg("running solver script")

		cmd := exec.CommandContext(ctx, "bash", "-ex", script)
		cmd.Dir = workDir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("running %s: %w", script, err)
		}
	}
	return nil
}

func findScripts(workDir string) ([]string, error) {
	var scripts []string
	err := filepath.WalkDir(workDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() &&
			filepath.Base(filepath.Dir(p)) == "run_scripts" &&
			strings.HasSuffix(p, ".sh") {
			scripts = append(scripts, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s for run scripts: %w", workDir, err)
	}
	sort.Strings(scripts)
	return scripts, nil
}
