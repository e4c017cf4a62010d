// Package cli defines the Cobra command tree for cargo-ls-crates. The root
// command lists installed binaries; each other file registers one subcommand
// with it. Commands delegate to internal packages for the work and only
// handle flag parsing, output formatting and exit status.
package cli
