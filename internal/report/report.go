// Package report joins installed binaries with the package index and writes
// the result as text, a table or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lscrates/cargo-ls-crates/internal/branding"
	"github.com/lscrates/cargo-ls-crates/internal/inventory"
)

// Format selects the output layout.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat converts a user-supplied name into a Format. The empty string
// selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, table or json)", s)
	}
}

// Options controls Write.
type Options struct {
	Format          Format
	ShowVersion     bool
	ShowDescription bool
	Color           bool
}

// Row is one binary joined with its metadata.
type Row struct {
	Name           string   `json:"name"`
	Key            string   `json:"key"`
	Version        string   `json:"version"`
	Description    string   `json:"description"`
	Root           string   `json:"root"`
	Found          bool     `json:"found"`
	CachedVersions []string `json:"cached_versions,omitempty"`
}

// Resolve looks up every binary of inv by its stripped key, in listing
// order. Misses get the placeholder for version and description. When
// stripDisplay is set the row name is the stripped key.
func Resolve(inv *inventory.Inventory, stripDisplay bool) []Row {
	placeholder := branding.Placeholder()
	rows := make([]Row, 0, len(inv.Binaries))
	for _, b := range inv.Binaries {
		row := Row{
			Name:        b.Name,
			Key:         b.Key,
			Version:     placeholder,
			Description: placeholder,
			Root:        b.Root,
		}
		if stripDisplay {
			row.Name = b.Key
		}
		if rec, ok := inv.Index.Lookup(b.Key); ok {
			row.Version = rec.Version
			row.Description = rec.Description
			row.Found = true
			row.CachedVersions = inv.Index.Versions(b.Key)
		}
		rows = append(rows, row)
	}
	return rows
}

// Write renders rows to w.
func Write(w io.Writer, rows []Row, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatTable:
		return writeTable(w, rows, opts)
	default:
		return writeText(w, rows, opts)
	}
}

type styles struct {
	color                      bool
	name, version, description lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return styles{
		color:       color,
		name:        base.Foreground(lipgloss.Color("2")).Bold(true), // Green
		version:     base.Foreground(lipgloss.Color("3")),            // Yellow
		description: base.Foreground(lipgloss.Color("4")),            // Blue
	}
}

// paint styles s line by line so multi-line values are not padded into a
// block. Without color s is returned as is.
func (st styles) paint(style lipgloss.Style, s string) string {
	if !st.color {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// writeText prints names on one line when neither column is requested,
// otherwise one record per line.
func writeText(w io.Writer, rows []Row, opts Options) error {
	st := newStyles(w, opts.Color)

	if !opts.ShowVersion && !opts.ShowDescription {
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = st.paint(st.name, r.Name)
		}
		_, err := fmt.Fprintln(w, strings.Join(names, " "))
		return err
	}

	for _, r := range rows {
		parts := []string{st.paint(st.name, r.Name)}
		if opts.ShowVersion {
			parts = append(parts, st.paint(st.version, r.Version))
		}
		if opts.ShowDescription {
			parts = append(parts, st.paint(st.description, r.Description))
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, rows []Row, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	header := []string{"NAME"}
	if opts.ShowVersion {
		header = append(header, "VERSION")
	}
	if opts.ShowDescription {
		header = append(header, "DESCRIPTION")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		cols := []string{r.Name}
		if opts.ShowVersion {
			cols = append(cols, r.Version)
		}
		if opts.ShowDescription {
			cols = append(cols, r.Description)
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, rows []Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
