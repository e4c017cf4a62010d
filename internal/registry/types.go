package registry

import (
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Record is the metadata of one cached package version.
type Record struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Description  string `json:"description"`
	AltName      string `json:"alt_name,omitempty"` // first [[bin]] name
	ManifestPath string `json:"manifest_path"`
}

// Index maps package and binary names to records. Adding a key that already
// exists replaces the previous record.
type Index struct {
	records  map[string]Record
	versions map[string][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		records:  make(map[string]Record),
		versions: make(map[string][]string),
	}
}

// Add stores r under its package name and, when set, its alternate name.
func (ix *Index) Add(r Record) {
	ix.put(r.Name, r)
	if r.AltName != "" {
		ix.put(r.AltName, r)
	}
}

func (ix *Index) put(key string, r Record) {
	ix.records[key] = r
	if !slices.Contains(ix.versions[key], r.Version) {
		ix.versions[key] = append(ix.versions[key], r.Version)
	}
}

// Lookup returns the record stored under key.
func (ix *Index) Lookup(key string) (Record, bool) {
	r, ok := ix.records[key]
	return r, ok
}

// Len returns the number of keys.
func (ix *Index) Len() int { return len(ix.records) }

// Names returns every key in lexical order.
func (ix *Index) Names() []string {
	return slices.Sorted(maps.Keys(ix.records))
}

// Merge copies every record of other into ix, in other's key order, with
// other's records replacing existing ones.
func (ix *Index) Merge(other *Index) {
	for _, key := range other.Names() {
		ix.records[key] = other.records[key]
		for _, v := range other.versions[key] {
			if !slices.Contains(ix.versions[key], v) {
				ix.versions[key] = append(ix.versions[key], v)
			}
		}
	}
}

// Versions returns every version seen for key, oldest first by semantic
// version. Versions that do not parse sort after the rest, lexically.
func (ix *Index) Versions(key string) []string {
	out := slices.Clone(ix.versions[key])
	slices.SortFunc(out, compareVersions)
	return out
}

func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
