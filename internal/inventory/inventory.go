// Package inventory gathers the installed binaries and the package index of
// one or more install roots. The index is complete before Build returns, so
// lookups never observe a partial scan.
package inventory

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lscrates/cargo-ls-crates/internal/installed"
	"github.com/lscrates/cargo-ls-crates/internal/installroot"
	"github.com/lscrates/cargo-ls-crates/internal/manifest"
	"github.com/lscrates/cargo-ls-crates/internal/registry"
)

var (
	// ErrNoBinaries is returned when no root has an executable in bin/.
	ErrNoBinaries = errors.New("no installed binaries found")
	// ErrNoMetadata is returned when no root yields a package record.
	ErrNoMetadata = registry.ErrNoMetadata
)

// Options configures Build.
type Options struct {
	Mode          manifest.Mode
	StripSuffixes []string
	Logger        *log.Logger
}

// Binary is an installed executable and the root it was found in.
type Binary struct {
	installed.Entry
	Root string
}

// RootReport records what was found in a single root.
type RootReport struct {
	Root    installroot.Root
	Listing installed.Listing
	ListErr error
	Stats   registry.Stats
	ScanErr error
}

// Inventory is the merged result over all roots.
type Inventory struct {
	Roots    []RootReport
	Binaries []Binary
	Index    *registry.Index
}

// Collect lists and scans every root without applying the fatal checks.
// Roots are visited in order; a path seen earlier is not visited again.
// Index records from later roots replace earlier ones with the same key.
func Collect(roots []installroot.Root, opts Options) *Inventory {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	inv := &Inventory{Index: registry.NewIndex()}
	seen := make(map[string]bool)
	for _, root := range roots {
		if seen[root.Path] {
			continue
		}
		seen[root.Path] = true

		rep := RootReport{Root: root}
		rep.Listing, rep.ListErr = installed.List(root.Path, installed.Options{StripSuffixes: opts.StripSuffixes})
		switch {
		case rep.ListErr != nil:
			logger.Warn("cannot list binaries", "root", root.Path, "err", rep.ListErr)
		case !rep.Listing.Exists:
			logger.Debug("bin directory missing", "dir", rep.Listing.Dir)
		case rep.Listing.Empty():
			logger.Debug("bin directory empty", "dir", rep.Listing.Dir)
		}
		for _, e := range rep.Listing.Entries {
			inv.Binaries = append(inv.Binaries, Binary{Entry: e, Root: root.Path})
		}

		var index *registry.Index
		index, rep.Stats, rep.ScanErr = registry.Scan(root.Path, registry.Options{Mode: opts.Mode, Logger: logger})
		if rep.ScanErr != nil {
			logger.Debug("no metadata from root", "root", root.Path, "err", rep.ScanErr)
		} else {
			inv.Index.Merge(index)
		}
		logger.Debug("scanned root", "root", root.Path, "source", root.Source,
			"binaries", len(rep.Listing.Entries), "records", rep.Stats.Records, "skipped", rep.Stats.Skipped)

		inv.Roots = append(inv.Roots, rep)
	}
	return inv
}

// Build is Collect followed by the fatal checks: no binaries at all, then
// no metadata at all.
func Build(roots []installroot.Root, opts Options) (*Inventory, error) {
	inv := Collect(roots, opts)
	if len(inv.Binaries) == 0 {
		return inv, fmt.Errorf("%w in %s", ErrNoBinaries, describeRoots(roots))
	}
	if inv.Index.Len() == 0 {
		return inv, fmt.Errorf("%w in %s", ErrNoMetadata, describeRoots(roots))
	}
	return inv, nil
}

func describeRoots(roots []installroot.Root) string {
	switch len(roots) {
	case 0:
		return "no install root"
	case 1:
		return roots[0].Path
	default:
		return fmt.Sprintf("%d install roots", len(roots))
	}
}
