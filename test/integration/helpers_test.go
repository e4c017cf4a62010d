//go:build integration

package integration_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// binPath is the cargo-ls-crates binary built once by TestMain.
var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cargo-ls-crates-e2e")
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating build dir: %v\n", err)
		os.Exit(1)
	}
	name := "cargo-ls-crates"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath = filepath.Join(dir, name)

	build := exec.Command("go", "build", "-o", binPath, "../..")
	build.Stdout, build.Stderr = os.Stdout, os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "building binary: %v\n", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// testEnv is an isolated HOME with an optional ~/.cargo install root.
type testEnv struct {
	HomeDir  string
	CargoDir string
}

// setupTestEnv creates a temp HOME. The binary runs with only the variables
// set here, so nothing from the developer's cargo setup leaks in.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	return &testEnv{HomeDir: home, CargoDir: filepath.Join(home, ".cargo")}
}

// run executes the binary and returns stdout, stderr and the exit code.
func (e *testEnv) run(t *testing.T, extraEnv []string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Env = append([]string{
		"HOME=" + e.HomeDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.HomeDir, ".config"),
		"NO_COLOR=1",
		"PATH=" + os.Getenv("PATH"),
	}, extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0
	case errors.As(err, &exitErr):
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	default:
		t.Fatalf("running %s: %v", binPath, err)
		return "", "", -1
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// installCrate places an executable in bin/ and its manifest in the source
// cache of root.
func installCrate(t *testing.T, root, name, version, description string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "bin", name), "")
	writeFile(t,
		filepath.Join(root, "registry", "src", "index.crates.io-6f17d22bba15001f", name+"-"+version, "Cargo.toml"),
		fmt.Sprintf("[package]\nname = %q\nversion = %q\ndescription = %q\n", name, version, description))
}
