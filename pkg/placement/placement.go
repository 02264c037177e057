// Package placement drives per-package asset placement: it normalizes
// declared entries, resolves destinations, copies sources into the web
// root, records every placement in the mapping store, and replays the
// record to reverse placement on uninstall and update.
package placement

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/heyaikeedo/apub/pkg/copier"
	"github.com/heyaikeedo/apub/pkg/glob"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/manifest"
	"github.com/heyaikeedo/apub/pkg/mapping"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/resolver"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Options configures an Orchestrator.
type Options struct {
	// DryRun resolves and logs every placement without touching the
	// filesystem or the mapping document.
	DryRun bool
}

// Orchestrator executes the install, update and uninstall lifecycle
// for a single package at a time. It performs no internal concurrency;
// every operation runs to completion before returning.
type Orchestrator struct {
	fs     types.FS
	paths  *paths.Paths
	store  *mapping.Store
	engine *copier.Engine
	dryRun bool
	logger zerolog.Logger
}

// New creates an Orchestrator over the given filesystem and path
// layout.
func New(fsys types.FS, p *paths.Paths, opts Options) *Orchestrator {
	return &Orchestrator{
		fs:     fsys,
		paths:  p,
		store:  mapping.New(fsys, p),
		engine: copier.New(fsys),
		dryRun: opts.DryRun,
		logger: logging.GetLogger("placement"),
	}
}

// Store exposes the mapping store for status reporting.
func (o *Orchestrator) Store() *mapping.Store {
	return o.store
}

// Install places every declared public entry of pkg and persists the
// resulting mapping. Entries that are malformed, whose source is
// missing, or whose copy fails are individually skipped with a
// warning; the batch always completes. A package with no declared
// entries is a no-op.
func (o *Orchestrator) Install(pkg types.Package) error {
	entries := manifest.Normalize(pkg.Public)
	if len(entries) == 0 {
		o.logger.Debug().Str("package", pkg.Name).Msg("no public entries declared")
		return nil
	}

	assetDir := o.paths.AssetDir(pkg.Name)
	collected := make(map[string]string)

	for _, entry := range entries {
		if err := o.place(pkg, entry, assetDir, collected); err != nil {
			// Directory-content recursion failures abort this
			// package's batch; everything else was already contained
			// per entry.
			return err
		}
	}

	if len(collected) == 0 {
		o.logger.Debug().Str("package", pkg.Name).Msg("nothing was placed")
		return nil
	}
	if o.dryRun {
		o.logger.Info().
			Str("package", pkg.Name).
			Int("files", len(collected)).
			Msg("dry-run: mapping not persisted")
		return nil
	}

	if err := o.store.Merge(pkg.Name, collected); err != nil {
		// Copied files are deliberately not rolled back; this is an
		// accepted inconsistency window, not a transaction.
		o.logger.Error().Err(err).Str("package", pkg.Name).Msg("failed to persist mapping")
		return err
	}

	o.logger.Info().
		Str("package", pkg.Name).
		Int("files", len(collected)).
		Msg("package assets installed")
	return nil
}

// Update removes everything recorded for the previous version of pkg,
// then installs the current state. Destructive-then-additive on
// purpose: stale files disappear even if the new version no longer
// declares an equivalent entry.
func (o *Orchestrator) Update(pkg types.Package) error {
	if err := o.Uninstall(pkg); err != nil {
		o.logger.Warn().Err(err).Str("package", pkg.Name).Msg("failed to remove previous assets, continuing with install")
	}
	return o.Install(pkg)
}

// Uninstall replays pkg's recorded mapping through the filesystem and
// deletes every destination, then cleans up the package's asset
// directory and removes its key from the mapping document. Running it
// twice in a row is harmless.
func (o *Orchestrator) Uninstall(pkg types.Package) error {
	key, entries, found, err := o.store.Lookup(pkg.Name)
	if err != nil {
		return err
	}
	if !found {
		o.logger.Debug().Str("package", pkg.Name).Msg("no recorded mapping")
		return nil
	}

	// Deterministic removal order; children sort after their parents
	// so files go before the directories that held them.
	dests := make([]string, 0, len(entries))
	for _, dest := range entries {
		dests = append(dests, dest)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dests)))

	for _, dest := range dests {
		o.remove(dest)
	}

	o.cleanupAssetDirs(pkg)

	if o.dryRun {
		o.logger.Info().Str("package", pkg.Name).Msg("dry-run: mapping key not removed")
		return nil
	}
	if err := o.store.Remove(key); err != nil {
		o.logger.Error().Err(err).Str("package", pkg.Name).Msg("failed to remove mapping key")
		return err
	}

	o.logger.Info().
		Str("package", pkg.Name).
		Int("files", len(dests)).
		Msg("package assets removed")
	return nil
}

// place handles one normalized entry. Only contents-mode walk errors
// escape; every other failure is logged and skipped.
func (o *Orchestrator) place(pkg types.Package, entry types.Entry, assetDir string, collected map[string]string) error {
	dest := resolver.Resolve(entry, assetDir, o.paths.WebRoot())

	if resolver.HasGlob(entry.Source) {
		return o.placeGlob(pkg, entry, dest, collected)
	}

	src := filepath.Join(pkg.InstallDir, filepath.FromSlash(entry.Source))
	if _, err := o.fs.Stat(src); err != nil {
		o.logger.Warn().
			Str("package", pkg.Name).
			Str("source", src).
			Msg("declared source does not exist, skipping")
		return nil
	}

	o.copyAndCollect(src, dest, collected)
	return nil
}

func (o *Orchestrator) placeGlob(pkg types.Package, entry types.Entry, dest string, collected map[string]string) error {
	items, mode, err := glob.Expand(o.fs, pkg.InstallDir, entry.Source)
	if err != nil {
		if mode == glob.ModeContents {
			return err
		}
		o.logger.Warn().
			Err(err).
			Str("package", pkg.Name).
			Str("pattern", entry.Source).
			Msg("glob expansion failed, skipping entry")
		return nil
	}
	if len(items) == 0 {
		o.logger.Debug().
			Str("package", pkg.Name).
			Str("pattern", entry.Source).
			Msg("pattern matched nothing")
		return nil
	}

	if mode == glob.ModeContents {
		for _, item := range items {
			o.placeItem(item, filepath.Join(dest, item.Rel), collected)
		}
		return nil
	}

	// Legacy entries preserve the matched relative structure under the
	// asset directory, so their destination is always a directory.
	if entry.Kind == types.EntryLegacy || o.isDirTarget(dest, items) {
		for _, item := range items {
			o.placeItem(item, filepath.Join(dest, item.Rel), collected)
		}
		return nil
	}

	o.copyAndCollect(items[0].Source, dest, collected)
	return nil
}

// isDirTarget decides whether a pattern-mode destination denotes a
// directory: multiple matches, a destination that already exists as a
// directory, or any match that is itself a directory.
func (o *Orchestrator) isDirTarget(dest string, items []glob.Item) bool {
	if len(items) > 1 {
		return true
	}
	for _, item := range items {
		if item.IsDir {
			return true
		}
	}
	if info, err := o.fs.Stat(dest); err == nil && info.IsDir() {
		return true
	}
	return false
}

func (o *Orchestrator) placeItem(item glob.Item, dst string, collected map[string]string) {
	if item.IsDir {
		if !o.dryRun {
			if err := o.engine.EnsureDir(dst); err != nil {
				o.logger.Warn().Err(err).Str("destination", dst).Msg("failed to create directory, skipping")
				return
			}
		}
		collected[item.Source] = dst
		return
	}
	o.copyAndCollect(item.Source, dst, collected)
}

// copyAndCollect copies src to dst and records the pair. Failures are
// reported but not accumulated.
func (o *Orchestrator) copyAndCollect(src, dst string, collected map[string]string) {
	if o.dryRun {
		o.logger.Info().Str("source", src).Str("destination", dst).Msg("dry-run: would copy")
		collected[src] = dst
		return
	}
	if err := o.engine.Copy(src, dst); err != nil {
		o.logger.Warn().Err(err).
			Str("source", src).
			Str("destination", dst).
			Msg("copy failed, skipping entry")
		return
	}
	collected[src] = dst
}

// remove deletes one recorded destination. Absence is not an error.
func (o *Orchestrator) remove(dest string) {
	info, err := o.fs.Stat(dest)
	if err != nil {
		return
	}
	if o.dryRun {
		o.logger.Info().Str("destination", dest).Msg("dry-run: would delete")
		return
	}

	if info.IsDir() {
		err = o.fs.RemoveAll(dest)
	} else {
		err = o.fs.Remove(dest)
	}
	if err != nil {
		o.logger.Warn().Err(err).Str("destination", dest).Msg("failed to delete destination")
	}
}

// cleanupAssetDirs removes the package's default asset directory and,
// if now empty, its parent vendor directory. Best-effort.
func (o *Orchestrator) cleanupAssetDirs(pkg types.Package) {
	if o.dryRun {
		return
	}

	assetDir := o.paths.AssetDir(pkg.Name)
	if _, err := o.fs.Stat(assetDir); err == nil {
		if err := o.fs.RemoveAll(assetDir); err != nil {
			o.logger.Warn().Err(err).Str("dir", assetDir).Msg("failed to remove asset directory")
		}
	}

	// Remove (not RemoveAll): the vendor directory may still hold
	// other packages' assets, so only an empty one goes.
	vendorDir := o.paths.VendorAssetDir(pkg.Vendor())
	if err := o.fs.Remove(vendorDir); err == nil {
		o.logger.Debug().Str("dir", vendorDir).Msg("removed empty vendor asset directory")
	}
}
