package installroot

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// ErrRootNotFound is returned when no candidate install root exists.
var ErrRootNotFound = errors.New("cargo install root not found")

// Source identifies where a candidate root came from.
type Source string

const (
	SourceFlag        Source = "--root"
	SourceInstallRoot Source = "CARGO_INSTALL_ROOT"
	SourceCargoConfig Source = "install.root"
	SourceCargoHome   Source = "CARGO_HOME"
	SourceHome        Source = "HOME"
)

// Env carries the inputs the locator reads. It is a plain value so callers
// and tests can build it without touching the process environment.
type Env struct {
	Flag        string // explicit --root value
	InstallRoot string // CARGO_INSTALL_ROOT
	CargoHome   string // CARGO_HOME
	Home        string // user home directory
}

// EnvFromOS builds an Env from the process environment. Home falls back to
// os.UserHomeDir when HOME is unset.
func EnvFromOS(flag string) Env {
	home := os.Getenv("HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	return Env{
		Flag:        flag,
		InstallRoot: os.Getenv("CARGO_INSTALL_ROOT"),
		CargoHome:   os.Getenv("CARGO_HOME"),
		Home:        home,
	}
}

// Root is a candidate install root.
type Root struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// Candidate is a Root together with the outcome of its existence check.
type Candidate struct {
	Root
	Err error
}

// Exists reports whether the candidate directory could be read.
func (c Candidate) Exists() bool { return c.Err == nil }

// Candidates returns every configured root in priority order. Empty values
// are skipped and consecutive duplicates are collapsed, keeping the
// higher-priority source.
func Candidates(env Env) []Root {
	var roots []Root
	add := func(src Source, path string) {
		if path == "" {
			return
		}
		roots = append(roots, Root{Path: filepath.Clean(path), Source: src})
	}

	add(SourceFlag, env.Flag)
	add(SourceInstallRoot, env.InstallRoot)
	if configured, ok := ConfiguredRoot(cargoHome(env)); ok {
		add(SourceCargoConfig, configured)
	}
	add(SourceCargoHome, env.CargoHome)
	if env.Home != "" {
		add(SourceHome, filepath.Join(env.Home, ".cargo"))
	}

	return slices.CompactFunc(roots, func(a, b Root) bool {
		return a.Path == b.Path
	})
}

// Resolve checks each candidate for existence without filtering, for
// diagnostics.
func Resolve(env Env) []Candidate {
	roots := Candidates(env)
	out := make([]Candidate, 0, len(roots))
	for _, r := range roots {
		out = append(out, Candidate{Root: r, Err: checkDir(r.Path)})
	}
	return out
}

// Locate returns all existing candidate roots in priority order. It returns
// ErrRootNotFound when none exist and never creates a directory.
func Locate(env Env) ([]Root, error) {
	var found []Root
	for _, c := range Resolve(env) {
		if c.Exists() {
			found = append(found, c.Root)
		}
	}
	if len(found) == 0 {
		return nil, ErrRootNotFound
	}
	return found, nil
}

// checkDir succeeds when path is a directory that can be listed.
func checkDir(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.ReadDir(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// cargoHome is the directory whose config file may set install.root.
func cargoHome(env Env) string {
	if env.CargoHome != "" {
		return env.CargoHome
	}
	if env.Home != "" {
		return filepath.Join(env.Home, ".cargo")
	}
	return ""
}
