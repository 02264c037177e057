// Package status implements the status command: report what the
// mapping document records and whether each destination is still
// present on disk.
package status

import (
	"sort"

	"github.com/heyaikeedo/apub/pkg/config"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/mapping"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Options defines the options for the Status command.
type Options struct {
	// ProjectRoot is the path to the project being served.
	ProjectRoot string

	// PackageName limits the report to one package. Empty means all.
	PackageName string

	// FileSystem overrides the filesystem (used by tests). Defaults to
	// the OS filesystem.
	FileSystem types.FS
}

// Entry is one recorded placement with its current on-disk state.
type Entry struct {
	Source      string
	Destination string
	Present     bool
}

// PackageStatus reports one package's recorded placements.
type PackageStatus struct {
	Key     string
	Entries []Entry
}

// Result is the status report.
type Result struct {
	MappingFile string
	Packages    []PackageStatus
}

// Status reads the mapping document and checks every recorded
// destination against the filesystem.
func Status(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Str("package", opts.PackageName).Msg("Starting status command")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}
	p, err := paths.New(opts.ProjectRoot, cfg)
	if err != nil {
		return nil, err
	}

	store := mapping.New(fsys, p)

	var keys []string
	if opts.PackageName != "" {
		key, _, found, err := store.Lookup(opts.PackageName)
		if err != nil {
			return nil, err
		}
		if found {
			keys = []string{key}
		}
	} else {
		keys, err = store.Keys()
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(keys)

	result := &Result{MappingFile: p.MappingFile()}
	for _, key := range keys {
		_, entries, found, err := store.Lookup(key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		status := PackageStatus{Key: key}
		for source, dest := range entries {
			_, statErr := fsys.Stat(dest)
			status.Entries = append(status.Entries, Entry{
				Source:      source,
				Destination: dest,
				Present:     statErr == nil,
			})
		}
		sort.Slice(status.Entries, func(i, j int) bool {
			return status.Entries[i].Destination < status.Entries[j].Destination
		})
		result.Packages = append(result.Packages, status)
	}

	log.Info().Int("packages", len(result.Packages)).Msg("Status command finished")
	return result, nil
}
