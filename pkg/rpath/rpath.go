package rpath

import (
	"fmt"
	"os"
	"path/filepath"
)

func ExecutableDir() (string, error) {
	exe_path, err := os.Executable()
	if err != nil {
		return "",
			fmt.Errorf("Can't find executable's location. Error: %w", err)
	}
	return filepath.Dir(exe_path), nil
}

// Convert resolves relative paths against the executable's
// directory so the binary can be launched from anywhere.
// Absolute paths are returned untouched.
func Convert(exe_dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(exe_dir, path)
}
