package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_ReturnsCreatedFiles(t *testing.T) {
	dir := t.TempDir()

	created, err := Execute(context.Background(), `sh -c "touch result.nc"`, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"result.nc"}, created)
}

func TestExecute_CapturesStdoutAsLogFile(t *testing.T) {
	dir := t.TempDir()

	created, err := Execute(context.Background(), `sh -c "echo solver output"`, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"stdout.log"}, created)

	content, err := os.ReadFile(filepath.Join(dir, "stdout.log"))
	require.NoError(t, err)
	assert.Equal(t, "solver output\n", string(content))

	// stderr was empty, so no stderr.log.
	assert.NoFileExists(t, filepath.Join(dir, "stderr.log"))
}

func TestExecute_ExcludesPreexistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.nc"), []byte("old"), 0o644))

	// Overwriting an existing file does not put it in the delta.
	created, err := Execute(context.Background(), `sh -c "echo new > input.nc && touch out.nc"`, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"out.nc"}, created)
}

func TestExecute_ExcludesSubdirectories(t *testing.T) {
	dir := t.TempDir()

	created, err := Execute(context.Background(), `sh -c "mkdir sub && touch sub/nested.nc && touch flat.nc"`, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"flat.nc"}, created)
}

func TestExecute_NonZeroExit(t *testing.T) {
	dir := t.TempDir()

	_, err := Execute(context.Background(), `sh -c "echo doomed; exit 2"`, dir)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode)
	assert.Contains(t, exitErr.Command, "exit 2")

	// Captured output is logged, not written to files.
	assert.NoFileExists(t, filepath.Join(dir, "stdout.log"))
	assert.NoFileExists(t, filepath.Join(dir, "stderr.log"))
}

func TestExecute_MissingExecutable(t *testing.T) {
	_, err := Execute(context.Background(), "no-such-binary-anywhere --flag", t.TempDir())
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Error(t, launchErr.Unwrap())
}

func TestExecute_QuotedArguments(t *testing.T) {
	dir := t.TempDir()

	created, err := Execute(context.Background(), `touch "name with spaces.nc"`, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"name with spaces.nc"}, created)
}

func TestExecute_EmptyCommand(t *testing.T) {
	_, err := Execute(context.Background(), "   ", t.TempDir())
	var launchErr *LaunchError
	assert.ErrorAs(t, err, &launchErr)
}
