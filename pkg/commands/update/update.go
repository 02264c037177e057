// Package update implements the update command: remove a package's
// previously recorded assets, then place the current ones.
package update

import (
	"path/filepath"

	"github.com/heyaikeedo/apub/pkg/config"
	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/installer"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/manifest"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/placement"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Options defines the options for the Update command.
type Options struct {
	// ProjectRoot is the path to the project being served.
	ProjectRoot string

	// PackageDir is the directory holding the package's sources and
	// its composer.json.
	PackageDir string

	// DryRun resolves and reports without writing.
	DryRun bool

	// FileSystem overrides the filesystem (used by tests). Defaults to
	// the OS filesystem.
	FileSystem types.FS
}

// Update re-places a package's assets: stale files recorded for the
// previous version are removed first, even when the new version no
// longer declares an equivalent entry.
func Update(opts Options) (types.Package, error) {
	log := logging.GetLogger("commands.update")
	log.Debug().Str("packageDir", opts.PackageDir).Bool("dryRun", opts.DryRun).Msg("Starting update command")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.ProjectRoot)
	if err != nil {
		return types.Package{}, err
	}
	p, err := paths.New(opts.ProjectRoot, cfg)
	if err != nil {
		return types.Package{}, err
	}

	dir := opts.PackageDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.Root(), dir)
	}

	pkg, err := manifest.Load(fsys, dir)
	if err != nil {
		return types.Package{}, err
	}
	if !installer.Supports(pkg.Type) {
		return pkg, errors.Newf(errors.ErrInvalidInput, "package %s has unsupported type %q", pkg.Name, pkg.Type)
	}

	orch := placement.New(fsys, p, placement.Options{DryRun: opts.DryRun})
	if err := orch.Update(pkg); err != nil {
		return pkg, err
	}

	log.Info().Str("package", pkg.Name).Msg("Update command finished")
	return pkg, nil
}
