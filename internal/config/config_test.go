package config

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/lscrates/cargo-ls-crates/internal/branding"
)

// isolate points the user config dir at a temp directory and clears any
// LSCRATES_* variables that would leak into viper.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("AppData", filepath.Join(dir, "AppData"))
	for _, k := range Keys() {
		t.Setenv(branding.EnvVar(k), "")
		os.Unsetenv(branding.EnvVar(k))
	}
}

func TestDirUnderUserConfigDir(t *testing.T) {
	isolate(t)
	base, err := os.UserConfigDir()
	if err != nil {
		t.Skip("no user config dir")
	}
	if got, want := Dir(), filepath.Join(base, "cargo-ls-crates"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if filepath.Base(FilePath()) != "config.yaml" {
		t.Errorf("FilePath() = %q", FilePath())
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := Current()
	if s.ManifestParser != "markers" || s.Color != ColorAuto || s.LogLevel != "warn" || s.Output != "text" {
		t.Errorf("defaults = %+v", s)
	}
	if s.StripSuffixes != nil {
		t.Errorf("StripSuffixes = %v, want nil (platform default)", s.StripSuffixes)
	}
	if _, err := os.Stat(Dir()); !os.IsNotExist(err) {
		t.Error("Load must not create the config directory")
	}
}

func TestSetPersistsAndReloads(t *testing.T) {
	isolate(t)
	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := Set(KeyManifestParser, "toml"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(KeyStripSuffixes, ".exe, .cmd"); err != nil {
		t.Fatalf("Set strip_suffixes: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := Get(KeyManifestParser); got != "toml" {
		t.Errorf("manifest_parser = %q, want toml", got)
	}
	if got := Current().StripSuffixes; !slices.Equal(got, []string{".exe", ".cmd"}) {
		t.Errorf("strip_suffixes = %v", got)
	}
	if got := Get(KeyStripSuffixes); got != ".exe,.cmd" {
		t.Errorf("Get(strip_suffixes) = %q", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(FilePath())
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("config file mode = %o, want 600", perm)
		}
	}
}

func TestSetEmptyStripSuffixesDisables(t *testing.T) {
	isolate(t)
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if err := Set(KeyStripSuffixes, ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	got := Current().StripSuffixes
	if got == nil || len(got) != 0 {
		t.Errorf("StripSuffixes = %#v, want empty non-nil", got)
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown key", "mirror", "x"},
		{"bad parser", KeyManifestParser, "yaml"},
		{"bad color", KeyColor, "sometimes"},
		{"bad suffix", KeyStripSuffixes, "exe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if err := Load(); err != nil {
				t.Fatal(err)
			}
			if err := Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) succeeded", tt.key, tt.value)
			}
			if _, err := os.Stat(FilePath()); !os.IsNotExist(err) {
				t.Error("rejected value must not write the config file")
			}
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if err := Set(KeyOutput, "table"); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LSCRATES_OUTPUT", "json")
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if got := Current().Output; got != "json" {
		t.Errorf("output = %q, want env value json", got)
	}
}

func TestSetWritesOnlyFileKeys(t *testing.T) {
	isolate(t)
	t.Setenv(branding.EnvVar(KeyColor), "always")
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if err := Set(KeyManifestParser, "toml"); err != nil {
		t.Fatal(err)
	}
	if err := Set(KeyOutput, "json"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatal(err)
	}
	var written map[string]any
	if err := yaml.Unmarshal(data, &written); err != nil {
		t.Fatalf("parsing written file: %v\n%s", err, data)
	}
	want := map[string]any{KeyManifestParser: "toml", KeyOutput: "json"}
	if len(written) != len(want) {
		t.Errorf("file keys = %v, want only %v", written, want)
	}
	for k, v := range want {
		if written[k] != v {
			t.Errorf("%s = %v, want %v", k, written[k], v)
		}
	}
	if _, ok := written[KeyColor]; ok {
		t.Error("environment override for color was written to the file")
	}
	if got := Current().Output; got != "json" {
		t.Errorf("loaded output = %q, want json", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	if err := EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(FilePath(), []byte("color: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}
