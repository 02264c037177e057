// Package types defines the core data structures shared across apub:
// the package descriptor supplied by the host package manager, the
// normalized public-entry union, and the filesystem abstraction used
// by everything that touches disk.
package types
