// Package mapping persists the record of every destination written
// for every package: a single JSON document beside the installed
// packages, keyed by package display name, mapping original source
// paths to web-root-relative destinations. The document is what makes
// placement reversible after a package's own files are gone.
package mapping

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/paths"
	"github.com/heyaikeedo/apub/pkg/types"
)

// document is the on-disk shape: package key -> source -> destination
// relative to the web root.
type document map[string]map[string]string

// Store reads and writes the mapping document. Each operation loads,
// modifies and rewrites the whole document; the host's sequential
// event dispatch is the only concurrency guarantee relied upon.
type Store struct {
	fs     types.FS
	paths  *paths.Paths
	logger zerolog.Logger
}

// New creates a Store over the given filesystem and path layout.
func New(fsys types.FS, p *paths.Paths) *Store {
	return &Store{
		fs:     fsys,
		paths:  p,
		logger: logging.GetLogger("mapping"),
	}
}

// Merge replaces the sub-map for packageKey with entries (wholesale,
// not incremental) and rewrites the document. Destination values are
// normalized to web-root-relative form so the document stays valid if
// the web root is relocated.
func (s *Store) Merge(packageKey string, entries map[string]string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	normalized := make(map[string]string, len(entries))
	for source, dest := range entries {
		normalized[source] = s.paths.RelativeToWebRoot(dest)
	}
	doc[packageKey] = normalized

	return s.write(doc)
}

// Lookup finds a package's recorded mappings. Three historical key
// shapes are tolerated for the same logical package, checked in
// priority order: the display name, the canonical (lowercased)
// identity, and a case-insensitive match of either. Destinations are
// re-qualified to absolute paths. found is false when no key matches.
func (s *Store) Lookup(name string) (key string, entries map[string]string, found bool, err error) {
	doc, err := s.load()
	if err != nil {
		return "", nil, false, err
	}

	if entries, ok := doc[name]; ok {
		return name, s.qualify(entries), true, nil
	}

	canonical := strings.ToLower(name)
	if entries, ok := doc[canonical]; ok {
		return canonical, s.qualify(entries), true, nil
	}

	for docKey, entries := range doc {
		if strings.EqualFold(docKey, name) {
			return docKey, s.qualify(entries), true, nil
		}
	}

	return "", nil, false, nil
}

// Remove deletes packageKey from the document and rewrites it.
// Removing an absent key is a no-op.
func (s *Store) Remove(packageKey string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[packageKey]; !ok {
		return nil
	}
	delete(doc, packageKey)
	return s.write(doc)
}

// Keys returns every package key in the document, for status
// reporting.
func (s *Store) Keys() ([]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *Store) qualify(entries map[string]string) map[string]string {
	qualified := make(map[string]string, len(entries))
	for source, dest := range entries {
		qualified[source] = s.paths.QualifyDestination(dest)
	}
	return qualified
}

// load reads the whole document. An absent file is an empty document,
// not an error; malformed JSON is a fatal read error.
func (s *Store) load() (document, error) {
	path := s.paths.MappingFile()

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return document{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrMappingRead, "failed to read mapping file %s", path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrMappingDecode, "mapping file %s is not valid JSON", path)
	}
	if doc == nil {
		doc = document{}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	path := s.paths.MappingFile()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrMappingEncode, "failed to encode mapping document")
	}

	if err := s.fs.MkdirAll(s.paths.VendorDir(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", s.paths.VendorDir())
	}

	// Write-then-rename so a crash mid-write never leaves a truncated
	// document behind.
	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrMappingWrite, "failed to write mapping file %s", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, errors.ErrMappingWrite, "failed to replace mapping file %s", path)
	}

	s.logger.Debug().Str("path", path).Int("packages", len(doc)).Msg("mapping document written")
	return nil
}
