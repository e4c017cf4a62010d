// Package manifest extracts the package description and the first [[bin]]
// target name from a Cargo.toml found in the registry source cache.
//
// Two extractors are provided. Markers searches the raw text for the literal
// `description = "` and `[[bin]]\nname = "` markers, which is fast and matches
// what cargo writes into normalized registry manifests. Structured decodes the
// file with go-toml and handles escaped quotes, multi-line strings and
// reordered [[bin]] keys correctly.
package manifest
