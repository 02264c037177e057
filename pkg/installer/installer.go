// Package installer implements the install-path contract apub exposes
// to the host package manager: each recognized package type has a
// fixed base installation directory, and a package's sources live
// under it at vendor/project.
package installer

import (
	"path/filepath"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/types"
)

// The two recognized package types. Packages of any other type are
// ignored at every lifecycle hook.
const (
	TypePlugin = "aikeedo-plugin"
	TypeTheme  = "aikeedo-theme"
)

// Supports reports whether pkgType is one of the recognized asset
// package types.
func Supports(pkgType string) bool {
	return pkgType == TypePlugin || pkgType == TypeTheme
}

// Installer resolves installation paths for recognized packages.
type Installer struct {
	paths *paths.Paths
}

// New creates an Installer using the given path layout.
func New(p *paths.Paths) *Installer {
	return &Installer{paths: p}
}

// BaseDir returns the fixed base installation directory for a package
// type.
func (i *Installer) BaseDir(pkgType string) (string, error) {
	switch pkgType {
	case TypePlugin:
		return i.paths.PluginsDir(), nil
	case TypeTheme:
		return i.paths.ThemesDir(), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unsupported package type: %s", pkgType)
}

// InstallPath returns the directory the package manager installs a
// package into (baseDir/vendor/project).
func (i *Installer) InstallPath(pkg types.Package) (string, error) {
	base, err := i.BaseDir(pkg.Type)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, pkg.Vendor(), pkg.Project()), nil
}
