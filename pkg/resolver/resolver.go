// Package resolver computes destination paths for declared public
// entries. It is pure: no filesystem access, just the documented rule
// table over (entry, defaultDir, webRoot).
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/heyaikeedo/apub/pkg/types"
)

// Rule is one row of the source/target resolution table.
type Rule struct {
	// Name identifies the row for logging and tests.
	Name string

	// Matches reports whether the row applies to the declared target.
	Matches func(target string) bool

	// Dest computes the destination for a matching entry.
	Dest func(entry types.Entry, defaultDir, webRoot string) string
}

// Rules is the resolution table for source/target entries, evaluated
// top to bottom. The first matching row wins. When a target is present
// and not one of the special values it fully determines the
// destination; the source basename plays no role.
var Rules = []Rule{
	{
		Name:    "default",
		Matches: func(target string) bool { return target == "" },
		Dest: func(e types.Entry, defaultDir, _ string) string {
			return filepath.Join(defaultDir, Basename(e.Source))
		},
	},
	{
		Name:    "dot",
		Matches: func(target string) bool { return target == "." },
		Dest: func(e types.Entry, defaultDir, _ string) string {
			return filepath.Join(defaultDir, Basename(e.Source))
		},
	},
	{
		Name: "webroot-shorthand",
		Matches: func(target string) bool {
			return target == "/" || target == "/."
		},
		Dest: func(e types.Entry, _, webRoot string) string {
			return filepath.Join(webRoot, Basename(e.Source))
		},
	},
	{
		Name: "webroot-path",
		Matches: func(target string) bool {
			return strings.HasPrefix(target, "/")
		},
		Dest: func(e types.Entry, _, webRoot string) string {
			return filepath.Join(webRoot, filepath.FromSlash(strings.TrimPrefix(e.Target, "/")))
		},
	},
	{
		Name:    "package-relative",
		Matches: func(target string) bool { return true },
		Dest: func(e types.Entry, defaultDir, _ string) string {
			return filepath.Join(defaultDir, filepath.FromSlash(e.Target))
		},
	},
}

// Resolve computes the destination path for an entry. defaultDir is
// the package's asset directory, webRoot the shared public root.
func Resolve(entry types.Entry, defaultDir, webRoot string) string {
	if entry.Kind == types.EntryLegacy {
		// Bare string entries keep their full relative structure under
		// the package's asset directory. Wildcards never appear in the
		// destination: a contents pattern resolves to its parent
		// directory, any other pattern to the asset directory itself,
		// with matches mirrored below it.
		if HasGlob(entry.Source) {
			if parent, trimmed := TrimWildcardSegments(entry.Source); trimmed {
				return filepath.Join(defaultDir, filepath.FromSlash(parent))
			}
			return defaultDir
		}
		return filepath.Join(defaultDir, filepath.FromSlash(entry.Source))
	}

	for _, rule := range Rules {
		if rule.Matches(entry.Target) {
			return rule.Dest(entry, defaultDir, webRoot)
		}
	}

	// Unreachable: the last rule matches everything.
	return filepath.Join(defaultDir, filepath.FromSlash(entry.Target))
}

// HasGlob reports whether the source contains wildcard characters and
// must be routed through the glob expander.
func HasGlob(source string) bool {
	return strings.ContainsAny(source, "*?[")
}

// TrimWildcardSegments removes trailing path segments consisting only
// of '*' characters (e.g. "dist/*" and "dist/**/*" both become
// "dist"). It reports whether anything was trimmed.
func TrimWildcardSegments(source string) (string, bool) {
	s := strings.TrimSuffix(source, "/")
	trimmed := false
	for {
		i := strings.LastIndexByte(s, '/')
		seg := s[i+1:]
		if seg == "" || strings.Trim(seg, "*") != "" {
			break
		}
		trimmed = true
		if i < 0 {
			return "", true
		}
		s = s[:i]
	}
	return s, trimmed
}

// Basename derives a destination file name from a source that may be
// a glob pattern: trailing wildcard segments are dropped and remaining
// wildcard metacharacters stripped before taking the base name.
func Basename(source string) string {
	s, _ := TrimWildcardSegments(source)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '*', '?', '[', ']':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return ""
	}
	return filepath.Base(filepath.FromSlash(s))
}
