// Package manifest reads package metadata (composer.json) and
// normalizes the declared extra.public entries into the tagged union
// the placement engine consumes. Malformed entries are skipped with a
// warning; they never abort the batch.
package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/types"
)

// FileName is the package metadata file read from an install
// directory.
const FileName = "composer.json"

type composerFile struct {
	Name  string                     `json:"name"`
	Type  string                     `json:"type"`
	Extra map[string]json.RawMessage `json:"extra"`
}

// Load reads the package metadata from dir and returns the package
// descriptor for it.
func Load(fs types.FS, dir string) (types.Package, error) {
	path := filepath.Join(dir, FileName)

	data, err := fs.ReadFile(path)
	if err != nil {
		return types.Package{}, errors.Wrapf(err, errors.ErrManifestRead, "failed to read %s", path)
	}

	var file composerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return types.Package{}, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", path)
	}

	return types.Package{
		Name:       file.Name,
		Type:       file.Type,
		InstallDir: dir,
		Public:     publicEntries(file.Extra),
	}, nil
}

// publicEntries extracts extra.public as an ordered list of raw
// values. Absent, empty or non-list values yield nil (a no-op, not an
// error).
func publicEntries(extra map[string]json.RawMessage) []any {
	raw, ok := extra["public"]
	if !ok {
		return nil
	}

	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger := logging.GetLogger("manifest")
		logger.Warn().
			Err(err).
			Msg("extra.public is not a list, ignoring")
		return nil
	}
	return entries
}

// Normalize converts raw extra.public values into normalized entries.
// A value is either a bare relative-path string or an object with a
// source and optional target; anything else is skipped with a warning.
func Normalize(raw []any) []types.Entry {
	logger := logging.GetLogger("manifest")

	entries := make([]types.Entry, 0, len(raw))
	for i, value := range raw {
		switch v := value.(type) {
		case string:
			if v == "" {
				logger.Warn().Int("index", i).Msg("empty public entry, skipping")
				continue
			}
			entries = append(entries, types.Entry{
				Kind:   types.EntryLegacy,
				Source: v,
			})

		case map[string]any:
			source, _ := v["source"].(string)
			if source == "" {
				logger.Warn().Int("index", i).Msg("public entry has no source, skipping")
				continue
			}
			target, _ := v["target"].(string)
			entries = append(entries, types.Entry{
				Kind:   types.EntrySourceTarget,
				Source: source,
				Target: target,
			})

		default:
			logger.Warn().
				Int("index", i).
				Interface("value", value).
				Msg("malformed public entry, skipping")
		}
	}
	return entries
}
