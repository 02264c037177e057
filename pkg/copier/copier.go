// Package copier implements the byte-for-byte copy engine behind
// asset placement. It creates missing destination directories, copies
// files and whole directory trees, and leaves failure isolation to
// the placement layer.
package copier

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/logging"
	"github.com/heyaikeedo/apub/pkg/types"
)

// Engine copies files and directories through a types.FS.
type Engine struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a copy engine over the given filesystem.
func New(fsys types.FS) *Engine {
	return &Engine{
		fs:     fsys,
		logger: logging.GetLogger("copier"),
	}
}

// Copy copies src to dst. Directory sources are copied recursively,
// file sources byte-for-byte. Missing ancestors of dst are created.
func (e *Engine) Copy(src, dst string) error {
	info, err := e.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceMissing, "source %s does not exist", src)
	}
	if info.IsDir() {
		return e.copyDir(src, dst)
	}
	return e.copyFile(src, dst, info.Mode())
}

// EnsureDir creates dir and any missing ancestors.
func (e *Engine) EnsureDir(dir string) error {
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}
	return nil
}

func (e *Engine) copyDir(src, dst string) error {
	if err := e.EnsureDir(dst); err != nil {
		return err
	}

	entries, err := e.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := e.copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", srcPath)
		}
		if err := e.copyFile(srcPath, dstPath, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) copyFile(src, dst string, mode fs.FileMode) error {
	if err := e.EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	data, err := e.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}
	if err := e.fs.WriteFile(dst, data, mode.Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dst)
	}

	e.logger.Trace().Str("source", src).Str("destination", dst).Msg("copied file")
	return nil
}
