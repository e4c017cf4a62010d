package platform

import (
	"runtime"
	"strings"
)

// ExecutableSuffixes returns the file suffixes cargo appends to installed
// binaries on the current OS.
func ExecutableSuffixes() []string {
	return executableSuffixes(runtime.GOOS)
}

func executableSuffixes(goos string) []string {
	if goos == "windows" {
		return []string{".exe"}
	}
	return nil
}

// TrimExecutableSuffix removes the first matching suffix from name. Matching
// ignores case; a name that is nothing but the suffix is returned unchanged.
func TrimExecutableSuffix(name string, suffixes []string) string {
	for _, s := range suffixes {
		if s == "" || len(name) <= len(s) {
			continue
		}
		if strings.EqualFold(name[len(name)-len(s):], s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}
