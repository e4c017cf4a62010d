// Package registry scans the cargo registry source cache of an install root
// (<root>/registry/src/<registry-id>/<name>-<version>/Cargo.toml) and builds
// an index from package and binary names to version and description.
//
// Every cached package directory is an independent candidate: a directory
// whose name has no version, whose manifest cannot be read, or whose manifest
// has no description is skipped without failing the scan.
package registry
