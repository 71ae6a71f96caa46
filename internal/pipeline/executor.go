package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/shlex"

	"github.com/pism/pism-cloud/pkg/logger"
)

// Execute runs command inside workDir with both output streams captured
// in memory, and returns the names of the regular files the command newly
// created directly in workDir. On success, non-empty streams are written
// to stdout.log / stderr.log first, so they appear in the returned delta.
// On a non-zero exit the captured streams are logged instead and an
// ExitError is returned.
func Execute(ctx context.Context, command, workDir string) ([]string, error) {
	before, err := listFiles(workDir)
	if err != nil {
		return nil, fmt.Errorf("snapshotting %s: %w", workDir, err)
	}

	// POSIX word splitting only: quoting and whitespace, no globbing or
	// variable expansion.
	args, err := shlex.Split(command)
	if err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}
	if len(args) == 0 {
		return nil, &LaunchError{Command: command, Err: errors.New("empty command")}
	}

	logger.Log.Info().Str("command", command).Str("dir", workDir).Msg("running command")

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			logger.Log.Error().Str("command", command).Int("exit_code", code).Msg("command failed")
			logStream("stdout", stdout.Bytes())
			logStream("stderr", stderr.Bytes())
			return nil, &ExitError{Command: command, ExitCode: code}
		}
		return nil, &LaunchError{Command: command, Err: err}
	}

	if err := saveStream(workDir, "stdout.log", stdout.Bytes()); err != nil {
		return nil, err
	}
	if err := saveStream(workDir, "stderr.log", stderr.Bytes()); err != nil {
		return nil, err
	}

	after, err := listFiles(workDir)
	if err != nil {
		return nil, fmt.Errorf("snapshotting %s: %w", workDir, err)
	}

	seen := make(map[string]struct{}, len(before))
	for _, name := range before {
		seen[name] = struct{}{}
	}

	created := make([]string, 0)
	for _, name := range after {
		if _, ok := seen[name]; !ok {
			created = append(created, name)
		}
	}
	return created, nil
}

// listFiles returns the regular files directly present in dir, in lexical
// order. The comparison is deliberately non-recursive: the command's
// contract is to write outputs flat into the working directory.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func saveStream(dir, name string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func logStream(name string, data []byte) {
	if len(data) == 0 {
		return
	}
	logger.Log.Error().Msg("====== captured " + name + " ======\n" + string(data))
}
