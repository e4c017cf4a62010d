// Package installed lists the executables cargo placed in an install root's
// bin directory.
package installed
