package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/lscrates/cargo-ls-crates/internal/branding"
	"github.com/lscrates/cargo-ls-crates/internal/platform"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyManifestParser = "manifest_parser"
	KeyStripSuffixes  = "strip_suffixes"
	KeyColor          = "color"
	KeyLogLevel       = "log_level"
	KeyOutput         = "output"
)

// Color policies for KeyColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var defaults = map[string]any{
	KeyManifestParser: "markers",
	KeyColor:          ColorAuto,
	KeyLogLevel:       "warn",
	KeyOutput:         "text",
}

// Keys returns every known setting key in lexical order.
func Keys() []string {
	return []string{KeyColor, KeyLogLevel, KeyManifestParser, KeyOutput, KeyStripSuffixes}
}

// Dir returns the config directory (<user config dir>/cargo-ls-crates).
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", branding.ConfigDir())
	}
	return filepath.Join(base, branding.ConfigDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, platform.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Any previously loaded state is discarded.
func Load() error {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing file just means nothing has been set yet.
		if os.IsNotExist(err) {
			return nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. List values are joined with commas.
// Returns empty string if not set.
func Get(key string) string {
	if key == KeyStripSuffixes {
		return strings.Join(viper.GetStringSlice(key), ",")
	}
	return viper.GetString(key)
}

// Set validates a key-value pair, stores it and saves the config file.
// strip_suffixes takes a comma-separated list; an empty value disables
// suffix stripping.
func Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}

	var v any = value
	if key == KeyStripSuffixes {
		v = splitList(value)
	}

	result, err := ValidateSettings(map[string]any{key: v})
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("invalid value %q for %s: %s", value, key, result.Issues[0].Message)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, platform.ConfigFilePerm)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	// Only what the file already holds is written back; defaults and
	// LSCRATES_* overrides stay out of it.
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	file.Set(key, v)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	viper.Set(key, v)
	return platform.Chmod(configFile, platform.ConfigFilePerm)
}

// Settings is the typed view of the loaded configuration. StripSuffixes is
// nil when unset, meaning the platform default.
type Settings struct {
	ManifestParser string
	StripSuffixes  []string
	Color          string
	LogLevel       string
	Output         string
}

// Current returns the settings loaded by Load.
func Current() Settings {
	s := Settings{
		ManifestParser: viper.GetString(KeyManifestParser),
		Color:          strings.ToLower(viper.GetString(KeyColor)),
		LogLevel:       viper.GetString(KeyLogLevel),
		Output:         viper.GetString(KeyOutput),
	}
	if viper.IsSet(KeyStripSuffixes) {
		s.StripSuffixes = splitList(strings.Join(viper.GetStringSlice(KeyStripSuffixes), ","))
	}
	return s
}

func splitList(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
