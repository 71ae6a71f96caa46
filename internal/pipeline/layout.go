package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// StandardLayout creates the fixed subdirectory skeleton that solver run
// scripts expect inside the working directory. Suitable as a WithSetup hook.
func StandardLayout(dir string) error {
	for _, sub := range []string{
		"input",
		"logs",
		"output/post_processing",
		"output/spatial",
		"output/state",
		"run_scripts",
	} {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(sub)), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}
	return nil
}
