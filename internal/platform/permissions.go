package platform

import (
	"os"
	"runtime"
)

// Permission modes for files the tool writes on its own behalf.
const (
	ConfigDirPerm  os.FileMode = 0o755
	ConfigFilePerm os.FileMode = 0o600
)

// Chmod sets file permissions. Windows has no Unix permission bits, so it is
// a no-op there.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
