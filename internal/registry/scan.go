package registry

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/lscrates/cargo-ls-crates/internal/branding"
	"github.com/lscrates/cargo-ls-crates/internal/manifest"
)

// SourceDir is the source cache location relative to an install root.
var SourceDir = filepath.Join("registry", "src")

var (
	// ErrSourceCacheMissing is returned when <root>/registry/src cannot be read.
	ErrSourceCacheMissing = errors.New("registry source cache not found")
	// ErrNoMetadata is returned when a scan yields no records.
	ErrNoMetadata = errors.New("no package metadata found")
)

// versionPattern locates the "-<major>.<minor>.<patch>" part of a cached
// package directory name.
var versionPattern = regexp.MustCompile(`-\d{1,3}\.\d{1,3}\.\d{1,3}`)

// SplitDirName splits "<name>-<version>" at the first version-looking
// substring. Anything after the patch number stays in the version.
func SplitDirName(dir string) (name, version string, ok bool) {
	loc := versionPattern.FindStringIndex(dir)
	if loc == nil {
		return "", "", false
	}
	return dir[:loc[0]], dir[loc[0]+1:], true
}

// Candidate is a cached package directory that may hold a manifest.
type Candidate struct {
	RegistryID   string // e.g. index.crates.io-6f17d22bba15001f
	DirName      string // e.g. ripgrep-14.1.0
	ManifestPath string
}

// Candidates opens srcDir and returns a lazy sequence over the directories
// two levels below it. Only the failure to read srcDir itself is reported;
// unreadable registry directories are skipped during iteration.
func Candidates(srcDir string) (iter.Seq[Candidate], error) {
	registries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceCacheMissing, srcDir, err)
	}

	manifestName := branding.ManifestFileName()
	return func(yield func(Candidate) bool) {
		for _, reg := range registries {
			regDir := filepath.Join(srcDir, reg.Name())
			packages, err := os.ReadDir(regDir)
			if err != nil {
				continue
			}
			for _, pkg := range packages {
				c := Candidate{
					RegistryID:   reg.Name(),
					DirName:      pkg.Name(),
					ManifestPath: filepath.Join(regDir, pkg.Name(), manifestName),
				}
				if !yield(c) {
					return
				}
			}
		}
	}, nil
}

// Options configures a scan.
type Options struct {
	Mode   manifest.Mode
	Logger *log.Logger
}

// Stats summarizes a scan.
type Stats struct {
	Candidates int `json:"candidates"`
	Records    int `json:"records"`
	Skipped    int `json:"skipped"`
}

// Scan indexes every manifest under <root>/registry/src. It fails when the
// source cache cannot be opened or when no record could be built.
func Scan(root string, opts Options) (*Index, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	extractor := manifest.For(opts.Mode)

	var stats Stats
	seq, err := Candidates(filepath.Join(root, SourceDir))
	if err != nil {
		return nil, stats, err
	}

	index := NewIndex()
	for c := range seq {
		stats.Candidates++
		rec, err := readRecord(c, extractor)
		if err != nil {
			stats.Skipped++
			logger.Debug("skipping cached package", "dir", c.DirName, "registry", c.RegistryID, "reason", err)
			continue
		}
		index.Add(rec)
		stats.Records++
	}

	if index.Len() == 0 {
		return nil, stats, fmt.Errorf("%w in %s", ErrNoMetadata, root)
	}
	return index, stats, nil
}

var errNoVersion = errors.New("directory name has no version")

// readRecord builds the record for one candidate.
func readRecord(c Candidate, extractor manifest.Extractor) (Record, error) {
	name, version, ok := SplitDirName(c.DirName)
	if !ok {
		return Record{}, errNoVersion
	}
	data, err := os.ReadFile(c.ManifestPath)
	if err != nil {
		return Record{}, err
	}
	md, err := extractor.Extract(data)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Name:         name,
		Version:      version,
		Description:  md.Description,
		AltName:      md.AltName,
		ManifestPath: c.ManifestPath,
	}, nil
}
