package appdir

import (
	"os"
	"path/filepath"
)

const dirName = ".speck-go"

// AppDir returns the per-user state directory, $HOME/.speck-go. It falls
// back to the working directory when no home directory is known. $HOME is
// read on every call.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// Resolve maps a relative file name into AppDir. Absolute paths are kept.
func Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(AppDir(), name)
}

// EnsureDir creates the directory holding path if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
