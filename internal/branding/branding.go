// Package branding provides compile-time identity values for the CLI.
//
// The values are read from branding.yaml, which Go's //go:embed bakes into the
// binary. Hard-coded defaults apply when a field is missing from the file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	CargoSubcommand  string `yaml:"cargo_subcommand"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	ConfigDir        string `yaml:"config_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	Placeholder      string `yaml:"placeholder"`
	ManifestFileName string `yaml:"manifest_file_name"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:          "cargo-ls-crates",
			CargoSubcommand:  "ls-crates",
			DisplayName:      "cargo ls-crates",
			Description:      "List binaries installed by cargo install, with versions and descriptions",
			ConfigDir:        "cargo-ls-crates",
			EnvPrefix:        "LSCRATES",
			Placeholder:      "n/a",
			ManifestFileName: "Cargo.toml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the binary name (e.g., "cargo-ls-crates").
func CLIName() string { load(); return defaults.CLIName }

// CargoSubcommand returns the name cargo passes as the first argument when the
// binary is run as `cargo <subcommand>`.
func CargoSubcommand() string { load(); return defaults.CargoSubcommand }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the directory name used under the user config dir.
func ConfigDir() string { load(); return defaults.ConfigDir }

// EnvPrefix returns the environment variable prefix for tool settings.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// Placeholder returns the text shown for a missing version or description.
func Placeholder() string { load(); return defaults.Placeholder }

// ManifestFileName returns the package manifest file name looked up in the
// registry source cache.
func ManifestFileName() string { load(); return defaults.ManifestFileName }

// EnvVar returns a fully qualified env var name, e.g. EnvVar("color") returns "LSCRATES_COLOR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
