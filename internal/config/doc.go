// Package config manages the tool's own settings, stored as YAML in the user
// config directory and overridable through LSCRATES_* environment variables.
// It reads and writes keys such as the manifest parser mode and the color
// policy, and validates config files against an embedded JSON Schema.
package config
