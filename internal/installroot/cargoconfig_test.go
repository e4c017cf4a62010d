package installroot

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	mkdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConfiguredRoot(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string // relative to the temp dir; "" means not configured
	}{
		{"absolute", "config.toml", "[install]\nroot = \"/opt/crates\"\n", "/opt/crates"},
		{"relative to parent of cargo home", "config.toml", "[install]\nroot = \"tools\"\n", "tools"},
		{"legacy name", "config", "[install]\nroot = \"/legacy\"\n", "/legacy"},
		{"no install table", "config.toml", "[build]\njobs = 4\n", ""},
		{"malformed", "config.toml", "[install\nroot = ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			home := filepath.Join(tmp, ".cargo")
			writeConfig(t, home, tt.file, tt.content)

			got, ok := ConfiguredRoot(home)
			if tt.want == "" {
				if ok {
					t.Errorf("ConfiguredRoot = %q, want not configured", got)
				}
				return
			}
			want := tt.want
			if !filepath.IsAbs(want) {
				want = filepath.Join(tmp, want)
			}
			if !ok || got != want {
				t.Errorf("ConfiguredRoot = %q, %v; want %q", got, ok, want)
			}
		})
	}
}

func TestConfiguredRootPrefersLegacyFile(t *testing.T) {
	home := filepath.Join(t.TempDir(), ".cargo")
	writeConfig(t, home, "config", "[install]\nroot = \"/from-legacy\"\n")
	writeConfig(t, home, "config.toml", "[install]\nroot = \"/from-toml\"\n")

	got, ok := ConfiguredRoot(home)
	if !ok || got != "/from-legacy" {
		t.Errorf("ConfiguredRoot = %q, %v; want /from-legacy", got, ok)
	}
}

func TestConfiguredRootMissing(t *testing.T) {
	if _, ok := ConfiguredRoot(t.TempDir()); ok {
		t.Error("expected no configured root without config files")
	}
	if _, ok := ConfiguredRoot(""); ok {
		t.Error("expected no configured root for empty cargo home")
	}
}

func TestCandidatesIncludeCargoConfig(t *testing.T) {
	tmp := t.TempDir()
	cargoHome := filepath.Join(tmp, "cargo-home")
	writeConfig(t, cargoHome, "config.toml", "[install]\nroot = \"/opt/from-config\"\n")

	got := Candidates(Env{InstallRoot: "/opt/override", CargoHome: cargoHome})
	want := []Source{SourceInstallRoot, SourceCargoConfig, SourceCargoHome}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %+v, want sources %v", got, want)
	}
	for i := range want {
		if got[i].Source != want[i] {
			t.Errorf("candidate %d source = %q, want %q", i, got[i].Source, want[i])
		}
	}
	if got[1].Path != "/opt/from-config" {
		t.Errorf("config candidate = %q, want /opt/from-config", got[1].Path)
	}
}

func TestCandidatesReadConfigFromDefaultHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".cargo"), "config.toml", "[install]\nroot = \"/opt/tools\"\n")

	got := Candidates(Env{Home: home})
	if len(got) != 2 || got[0].Source != SourceCargoConfig || got[1].Source != SourceHome {
		t.Errorf("Candidates = %+v, want install.root then HOME", got)
	}
}
