package types

import "strings"

// Package describes a single package as surfaced by the host package
// manager's lifecycle events. apub only ever reads it.
type Package struct {
	// Name is the display name from the package metadata, a
	// vendor/project pair (e.g. "acme/chat"). Case is preserved.
	Name string

	// Type is the declared package type. Only the recognized asset
	// package types are processed; everything else is ignored.
	Type string

	// InstallDir is the absolute path where the package manager placed
	// the package's source files.
	InstallDir string

	// Public holds the raw extra.public values from the package
	// metadata, in declaration order. Elements are decoded JSON values:
	// strings or objects. Normalization happens in pkg/manifest.
	Public []any
}

// Vendor returns the vendor half of the package name, or the whole
// name if it has no slash.
func (p Package) Vendor() string {
	if i := strings.IndexByte(p.Name, '/'); i >= 0 {
		return p.Name[:i]
	}
	return p.Name
}

// Project returns the project half of the package name, or "" if the
// name has no slash.
func (p Package) Project() string {
	if i := strings.IndexByte(p.Name, '/'); i >= 0 {
		return p.Name[i+1:]
	}
	return ""
}

// EntryKind discriminates the two accepted shapes of a declared entry.
type EntryKind int

const (
	// EntryLegacy is a bare string entry. The full relative path is
	// preserved under the package's asset directory.
	EntryLegacy EntryKind = iota

	// EntrySourceTarget is an object entry with a source and an
	// optional target.
	EntrySourceTarget
)

// Entry is a normalized declared entry. Exactly one shape is parsed
// per raw value; malformed raw values never become an Entry.
type Entry struct {
	Kind   EntryKind
	Source string

	// Target is the raw declared target. Empty means "default
	// placement" (absent, "" and "." are equivalent by contract).
	Target string
}
