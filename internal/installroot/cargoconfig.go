package installroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// cargoConfigFiles are checked in order and the first one present is used.
// Cargo prefers the extension-less legacy name when both exist.
var cargoConfigFiles = []string{"config", "config.toml"}

type cargoConfig struct {
	Install struct {
		Root string `toml:"root"`
	} `toml:"install"`
}

// ConfiguredRoot returns the install.root value from the cargo config file in
// cargoHome. Relative values are resolved against the parent of cargoHome,
// the way cargo resolves config-relative paths.
func ConfiguredRoot(cargoHome string) (string, bool) {
	if cargoHome == "" {
		return "", false
	}
	for _, name := range cargoConfigFiles {
		path := filepath.Join(cargoHome, name)
		root, err := readInstallRoot(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil || root == "" {
			return "", false
		}
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(filepath.Clean(cargoHome)), root)
		}
		return root, true
	}
	return "", false
}

// readInstallRoot decodes the [install] table of a cargo config file.
func readInstallRoot(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var cfg cargoConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parsing cargo config %s: %w", path, err)
	}
	return cfg.Install.Root, nil
}
