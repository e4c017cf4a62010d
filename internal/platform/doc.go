// Package platform isolates operating-system differences: which executable
// file suffixes cargo produces and whether Unix permission bits apply.
package platform
