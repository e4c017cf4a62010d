// Package installroot resolves the cargo installation root. Candidates are
// gathered from an explicit override, CARGO_INSTALL_ROOT, the cargo config
// value install.root, CARGO_HOME and finally ~/.cargo, in that order.
// Only candidates that exist as readable directories are returned.
package installroot
