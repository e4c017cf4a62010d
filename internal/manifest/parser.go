package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by extractors. Callers in the scanner treat all of them as
// a reason to skip the manifest.
var (
	ErrNoDescription = errors.New("manifest has no description")
	ErrNotUTF8       = errors.New("manifest is not valid UTF-8")
)

// Mode selects an extractor.
type Mode string

const (
	ModeMarkers Mode = "markers"
	ModeTOML    Mode = "toml"
)

// Modes lists the accepted mode names.
func Modes() []Mode { return []Mode{ModeMarkers, ModeTOML} }

// ModeNames returns the accepted mode names joined for help and error text,
// e.g. "markers or toml".
func ModeNames() string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// ParseMode converts a user-supplied name into a Mode. The empty string
// selects ModeMarkers.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeMarkers, nil
	}
	if slices.Contains(Modes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown manifest parser %q (want %s)", s, ModeNames())
}

// Metadata is what a manifest contributes to a package record.
type Metadata struct {
	Description string
	AltName     string // first [[bin]] name, empty when absent
}

// Extractor pulls Metadata out of raw manifest bytes.
type Extractor interface {
	Extract(data []byte) (Metadata, error)
}

// For returns the extractor for mode. Unknown modes fall back to Markers.
func For(mode Mode) Extractor {
	if mode == ModeTOML {
		return Structured{}
	}
	return Markers{}
}

const (
	descriptionMarker = `description = "`
	binNameMarker     = "[[bin]]\nname = \""
)

// Markers extracts fields by literal substring search.
type Markers struct{}

// Extract implements Extractor.
//
// The description is the text between the first and last double quote on the
// line that holds the first `description = "` marker; an escaped quote inside
// the value is not recognized. The alternate name is the rest of the line
// following the first `[[bin]]\nname = "` marker, minus its final character.
func (Markers) Extract(data []byte) (Metadata, error) {
	if !utf8.Valid(data) {
		return Metadata{}, ErrNotUTF8
	}
	text := string(data)

	desc, ok := markerDescription(text)
	if !ok {
		return Metadata{}, ErrNoDescription
	}
	return Metadata{Description: desc, AltName: markerBinName(text)}, nil
}

func markerDescription(text string) (string, bool) {
	start := strings.Index(text, descriptionMarker)
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return "", false
	}
	line := text[start : start+end]
	first := strings.IndexByte(line, '"')
	last := strings.LastIndexByte(line, '"')
	if first < 0 || last <= first {
		return "", false
	}
	return line[first+1 : last], true
}

func markerBinName(text string) string {
	start := strings.Index(text, binNameMarker)
	if start < 0 {
		return ""
	}
	rest := text[start+len(binNameMarker):]
	end := strings.IndexByte(rest, '\n')
	if end < 1 {
		return ""
	}
	return rest[:end-1]
}

// Structured extracts fields by decoding the manifest as TOML.
type Structured struct{}

type cargoManifest struct {
	Package struct {
		Description *string `toml:"description"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

// Extract implements Extractor.
func (Structured) Extract(data []byte) (Metadata, error) {
	if !utf8.Valid(data) {
		return Metadata{}, ErrNotUTF8
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Package.Description == nil {
		return Metadata{}, ErrNoDescription
	}

	md := Metadata{Description: *m.Package.Description}
	if len(m.Bin) > 0 {
		md.AltName = m.Bin[0].Name
	}
	return md, nil
}
