package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lscrates/cargo-ls-crates/internal/config"
	"github.com/lscrates/cargo-ls-crates/internal/installroot"
	"github.com/lscrates/cargo-ls-crates/internal/inventory"
	"github.com/lscrates/cargo-ls-crates/internal/manifest"
	"github.com/lscrates/cargo-ls-crates/internal/report"
)

func runList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		logger.Debug("ignoring arguments", "args", args)
	}

	format, err := report.ParseFormat(firstNonEmpty(outputFlag, settings.Output))
	if err != nil {
		return err
	}
	mode, err := parserMode()
	if err != nil {
		return err
	}

	roots, err := locateRoots()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showPaths {
		for _, r := range roots {
			fmt.Fprintln(out, r.Path)
		}
		return nil
	}

	inv, err := inventory.Build(roots, inventoryOptions(mode))
	if err != nil {
		return err
	}

	rows := report.Resolve(inv, stripDisplay)
	return report.Write(out, rows, report.Options{
		Format:          format,
		ShowVersion:     showVersions,
		ShowDescription: showDescriptions,
		Color:           useColor(out),
	})
}

// locateRoots resolves the install roots for this run, honoring --root and
// --first-root.
func locateRoots() ([]installroot.Root, error) {
	env := installroot.EnvFromOS(rootFlag)
	roots, err := installroot.Locate(env)
	if err != nil {
		var checked []string
		for _, r := range installroot.Candidates(env) {
			checked = append(checked, r.Path)
		}
		if len(checked) == 0 {
			return nil, fmt.Errorf("%w: no candidate configured", err)
		}
		return nil, fmt.Errorf("%w (checked %s)", err, strings.Join(checked, ", "))
	}
	for _, r := range roots {
		logger.Debug("install root", "path", r.Path, "source", r.Source)
	}
	if firstRoot {
		roots = roots[:1]
	}
	return roots, nil
}

func parserMode() (manifest.Mode, error) {
	return manifest.ParseMode(firstNonEmpty(parserFlag, settings.ManifestParser))
}

func inventoryOptions(mode manifest.Mode) inventory.Options {
	return inventory.Options{
		Mode:          mode,
		StripSuffixes: settings.StripSuffixes,
		Logger:        logger,
	}
}

// useColor applies --no-color, NO_COLOR and the color setting. In auto mode
// color is used only when w is a terminal.
func useColor(w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch settings.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
