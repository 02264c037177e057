// Package paths provides centralized path handling for apub. Every
// destination the placement engine computes is rooted at one of the
// paths resolved here, and mapping entries are stored relative to the
// web root so the document survives a web-root relocation.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/heyaikeedo/apub/pkg/config"
	"github.com/heyaikeedo/apub/pkg/errors"
)

// MappingFileName is the name of the persisted mapping document. It
// lives in the vendor directory, beside the installed packages.
const MappingFileName = "aikeedo-file-mappings.json"

// Paths resolves every location apub reads or writes. All returned
// paths are absolute.
type Paths struct {
	root        string
	webRoot     string
	vendorDir   string
	assetPrefix string
	pluginsDir  string
	themesDir   string
}

// New creates a Paths instance for the project rooted at root.
// Relative configuration values are resolved against root.
func New(root string, cfg *config.Config) (*Paths, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve project root %s", root)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(absRoot, p)
	}

	return &Paths{
		root:        absRoot,
		webRoot:     abs(cfg.WebRoot),
		vendorDir:   abs(cfg.VendorDir),
		assetPrefix: cfg.AssetPrefix,
		pluginsDir:  abs(cfg.PluginsDir),
		themesDir:   abs(cfg.ThemesDir),
	}, nil
}

// Root returns the project root directory.
func (p *Paths) Root() string {
	return p.root
}

// WebRoot returns the externally served base directory.
func (p *Paths) WebRoot() string {
	return p.webRoot
}

// VendorDir returns the package manager's dependency directory.
func (p *Paths) VendorDir() string {
	return p.vendorDir
}

// MappingFile returns the path of the persisted mapping document.
func (p *Paths) MappingFile() string {
	return filepath.Join(p.vendorDir, MappingFileName)
}

// AssetRoot returns the directory holding per-package asset
// directories.
func (p *Paths) AssetRoot() string {
	return filepath.Join(p.webRoot, p.assetPrefix)
}

// AssetDir returns the default asset directory for a package name
// (webRoot/<prefix>/<vendor>/<project>).
func (p *Paths) AssetDir(pkgName string) string {
	return filepath.Join(p.AssetRoot(), filepath.FromSlash(pkgName))
}

// VendorAssetDir returns the parent directory shared by all of a
// vendor's package asset directories.
func (p *Paths) VendorAssetDir(vendor string) string {
	return filepath.Join(p.AssetRoot(), vendor)
}

// PluginsDir returns the base installation directory for plugin
// packages.
func (p *Paths) PluginsDir() string {
	return p.pluginsDir
}

// ThemesDir returns the base installation directory for theme
// packages.
func (p *Paths) ThemesDir() string {
	return p.themesDir
}

// RelativeToWebRoot rewrites an absolute destination to its web-root
// relative form. Paths outside the web root are returned unchanged.
func (p *Paths) RelativeToWebRoot(dest string) string {
	rel, err := filepath.Rel(p.webRoot, dest)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dest
	}
	return rel
}

// QualifyDestination turns a recorded destination back into an
// absolute path, prefixing the web root unless it already is absolute.
func (p *Paths) QualifyDestination(dest string) string {
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(p.webRoot, dest)
}
