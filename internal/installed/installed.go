package installed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lscrates/cargo-ls-crates/internal/platform"
)

// BinDir is the install root subdirectory holding installed executables.
const BinDir = "bin"

// Entry is one installed executable.
type Entry struct {
	Name string // file name as listed, used for display
	Key  string // Name without the executable suffix, used for lookup
	Path string // absolute path to the file
}

// Listing is the content of one bin directory. Exists is false when the
// directory is absent, which callers treat the same as an empty directory
// but which diagnostics report separately.
type Listing struct {
	Root    string
	Dir     string
	Exists  bool
	Entries []Entry
}

// Empty reports whether the listing holds no executables.
func (l Listing) Empty() bool { return len(l.Entries) == 0 }

// Options controls how entries are keyed.
type Options struct {
	// StripSuffixes are removed from entry names to form lookup keys. Nil
	// means the platform default.
	StripSuffixes []string
}

// List reads <root>/bin. A missing directory is not an error.
func List(root string, opts Options) (Listing, error) {
	dir := filepath.Join(root, BinDir)
	listing := Listing{Root: root, Dir: dir}

	dirEntries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return listing, nil
	}
	if err != nil {
		return listing, fmt.Errorf("reading bin directory %s: %w", dir, err)
	}
	listing.Exists = true

	suffixes := opts.StripSuffixes
	if suffixes == nil {
		suffixes = platform.ExecutableSuffixes()
	}

	listing.Entries = make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		listing.Entries = append(listing.Entries, Entry{
			Name: name,
			Key:  platform.TrimExecutableSuffix(name, suffixes),
			Path: filepath.Join(dir, name),
		})
	}
	return listing, nil
}
