// Package uninstall implements the uninstall command: replay a
// package's recorded mapping and delete everything it placed. It works
// from the mapping document alone, so it succeeds even after the
// package's own files are gone from disk.
package uninstall

import (
	"github.com/heyaikeedo/apub/pkg/config"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/placement"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Options defines the options for the Uninstall command.
type Options struct {
	// ProjectRoot is the path to the project being served.
	ProjectRoot string

	// PackageName is the package to remove, by display name. Lookup
	// tolerates the historical key shapes of the mapping document.
	PackageName string

	// DryRun reports what would be deleted without deleting.
	DryRun bool

	// FileSystem overrides the filesystem (used by tests). Defaults to
	// the OS filesystem.
	FileSystem types.FS
}

// Uninstall removes every destination recorded for the named package
// and deletes its key from the mapping document. Removing a package
// with no recorded mapping is a no-op.
func Uninstall(opts Options) error {
	log := logging.GetLogger("commands.uninstall")
	log.Debug().Str("package", opts.PackageName).Bool("dryRun", opts.DryRun).Msg("Starting uninstall command")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.ProjectRoot)
	if err != nil {
		return err
	}
	p, err := paths.New(opts.ProjectRoot, cfg)
	if err != nil {
		return err
	}

	orch := placement.New(fsys, p, placement.Options{DryRun: opts.DryRun})
	if err := orch.Uninstall(types.Package{Name: opts.PackageName}); err != nil {
		return err
	}

	log.Info().Str("package", opts.PackageName).Msg("Uninstall command finished")
	return nil
}
