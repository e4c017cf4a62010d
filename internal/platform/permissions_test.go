package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmodConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: auto\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, ConfigFilePerm); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != ConfigFilePerm {
		t.Errorf("permissions = %o, want %o", perm, ConfigFilePerm)
	}
}

func TestChmodMissingPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Chmod is a no-op on windows")
	}
	if err := Chmod(filepath.Join(t.TempDir(), "absent"), ConfigFilePerm); err == nil {
		t.Error("expected error for missing path")
	}
}
