// Package testutil builds throwaway cargo install roots on disk for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DefaultRegistry is the registry directory name cargo uses for crates.io.
const DefaultRegistry = "index.crates.io-6f17d22bba15001f"

// CargoRoot is an install root under t.TempDir().
type CargoRoot struct {
	t    *testing.T
	Path string
}

// NewCargoRoot creates an empty install root directory.
func NewCargoRoot(t *testing.T) *CargoRoot {
	t.Helper()
	return NewCargoRootAt(t, filepath.Join(t.TempDir(), ".cargo"))
}

// NewCargoRootAt creates an empty install root at path.
func NewCargoRootAt(t *testing.T, path string) *CargoRoot {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("creating install root %s: %v", path, err)
	}
	return &CargoRoot{t: t, Path: path}
}

// Bin creates empty executables in <root>/bin. With no names it only
// creates the directory.
func (r *CargoRoot) Bin(names ...string) *CargoRoot {
	r.t.Helper()
	dir := filepath.Join(r.Path, "bin")
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.t.Fatalf("creating dir %s: %v", dir, err)
	}
	for _, n := range names {
		WriteFile(r.t, filepath.Join(dir, n), "")
	}
	return r
}

// Crate writes a Cargo.toml for dirName in the default registry.
func (r *CargoRoot) Crate(dirName, manifest string) *CargoRoot {
	r.t.Helper()
	return r.CrateIn(DefaultRegistry, dirName, manifest)
}

// CrateIn writes <root>/registry/src/<registry>/<dirName>/Cargo.toml.
func (r *CargoRoot) CrateIn(registry, dirName, manifest string) *CargoRoot {
	r.t.Helper()
	WriteFile(r.t, filepath.Join(r.SourceDir(), registry, dirName, "Cargo.toml"), manifest)
	return r
}

// SourceDir returns <root>/registry/src, creating it.
func (r *CargoRoot) SourceDir() string {
	r.t.Helper()
	dir := filepath.Join(r.Path, "registry", "src")
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.t.Fatalf("creating dir %s: %v", dir, err)
	}
	return dir
}

// Manifest returns a minimal package manifest with a description.
func Manifest(name, version, description string) string {
	return "[package]\nname = \"" + name + "\"\nversion = \"" + version + "\"\ndescription = \"" + description + "\"\n"
}

// ManifestWithBin returns Manifest plus a [[bin]] target.
func ManifestWithBin(name, version, description, bin string) string {
	return Manifest(name, version, description) + "\n[[bin]]\nname = \"" + bin + "\"\npath = \"src/main.rs\"\n"
}

// WriteFile creates a file at path with content, creating parent dirs.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
