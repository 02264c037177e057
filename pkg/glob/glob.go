// Package glob expands wildcard sources declared by packages. Two
// modes exist: contents mode ("dist/*" means copy the directory's
// contents, mirroring its tree) and pattern mode (a single-level glob
// match against the filesystem).
package glob

import (
	"path/filepath"
	"strings"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/resolver"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Mode reports how a pattern was expanded.
type Mode int

const (
	// ModeContents copies a directory's contents, preserving relative
	// structure.
	ModeContents Mode = iota

	// ModePattern matched individual filesystem entries.
	ModePattern
)

// Item is one expanded source entry.
type Item struct {
	// Source is the absolute source path.
	Source string

	// Rel is the path relative to the pattern parent (contents mode)
	// or to the install directory (pattern mode). Destinations mirror
	// it when the target denotes a directory.
	Rel string

	// IsDir reports whether the source is a directory.
	IsDir bool
}

// IsContents reports whether pattern is a contents-mode pattern, i.e.
// it ends with one or more trailing wildcard-only segments.
func IsContents(pattern string) bool {
	_, trimmed := resolver.TrimWildcardSegments(pattern)
	return trimmed
}

// Expand expands a wildcard source pattern against installDir.
// A missing contents-mode parent and a pattern with zero matches are
// both soft no-ops: they yield no items and no error. An invalid
// pattern yields an ErrGlobInvalid error; walk failures during
// contents-mode recursion propagate.
func Expand(fsys types.FS, installDir, pattern string) ([]Item, Mode, error) {
	if IsContents(pattern) {
		items, err := expandContents(fsys, installDir, pattern)
		return items, ModeContents, err
	}
	items, err := expandPattern(fsys, installDir, pattern)
	return items, ModePattern, err
}

func expandContents(fsys types.FS, installDir, pattern string) ([]Item, error) {
	logger := logging.GetLogger("glob")

	rel, _ := resolver.TrimWildcardSegments(pattern)
	parent := filepath.Join(installDir, filepath.FromSlash(rel))

	info, err := fsys.Stat(parent)
	if err != nil {
		logger.Warn().
			Str("pattern", pattern).
			Str("parent", parent).
			Msg("pattern parent does not exist, skipping")
		return nil, nil
	}
	if !info.IsDir() {
		logger.Warn().
			Str("pattern", pattern).
			Str("parent", parent).
			Msg("pattern parent is not a directory, skipping")
		return nil, nil
	}

	return walk(fsys, parent, "")
}

// walk lists dir recursively. Directories are yielded before their
// contents so destinations can be created in order.
func walk(fsys types.FS, dir, prefix string) ([]Item, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}

	var items []Item
	for _, entry := range entries {
		rel := filepath.Join(prefix, entry.Name())
		abs := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			items = append(items, Item{Source: abs, Rel: rel, IsDir: true})
			sub, err := walk(fsys, abs, rel)
			if err != nil {
				return nil, err
			}
			items = append(items, sub...)
			continue
		}
		items = append(items, Item{Source: abs, Rel: rel, IsDir: false})
	}
	return items, nil
}

func expandPattern(fsys types.FS, installDir, pattern string) ([]Item, error) {
	rels, err := match(fsys, installDir, pattern)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rels))
	for _, rel := range rels {
		abs := filepath.Join(installDir, filepath.FromSlash(rel))
		info, err := fsys.Stat(abs)
		if err != nil {
			// Matched a moment ago; treat a vanished entry as a
			// non-match.
			continue
		}
		items = append(items, Item{Source: abs, Rel: filepath.FromSlash(rel), IsDir: info.IsDir()})
	}
	return items, nil
}

// match performs a single-level glob match of pattern against the
// tree under root, segment by segment.
func match(fsys types.FS, root, pattern string) ([]string, error) {
	candidates := []string{""}

	for _, seg := range strings.Split(pattern, "/") {
		if seg == "" {
			continue
		}

		var next []string
		for _, cand := range candidates {
			if !resolver.HasGlob(seg) {
				p := joinRel(cand, seg)
				if _, err := fsys.Stat(filepath.Join(root, filepath.FromSlash(p))); err == nil {
					next = append(next, p)
				}
				continue
			}

			entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(cand)))
			if err != nil {
				// Not a directory or unreadable: this candidate simply
				// yields no matches.
				continue
			}
			for _, entry := range entries {
				ok, err := filepath.Match(seg, entry.Name())
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrGlobInvalid, "invalid pattern %q", pattern)
				}
				if ok {
					next = append(next, joinRel(cand, entry.Name()))
				}
			}
		}

		candidates = next
		if len(candidates) == 0 {
			break
		}
	}

	return candidates, nil
}

func joinRel(base, name string) string {
	if base == "" {
		return name
	}
	return base + "/" + name
}
