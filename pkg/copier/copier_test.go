package copier

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/types"
)

func newEngine(t *testing.T) (*Engine, types.FS) {
	t.Helper()
	fs := filesystem.NewAfero(afero.NewMemMapFs())
	return New(fs), fs
}

func TestCopyFileCreatesAncestors(t *testing.T) {
	engine, fs := newEngine(t)
	require.NoError(t, fs.MkdirAll("/src", 0755))
	require.NoError(t, fs.WriteFile("/src/app.js", []byte("content"), 0644))

	require.NoError(t, engine.Copy("/src/app.js", "/web/public/e/acme/chat/app.js"))

	data, err := fs.ReadFile("/web/public/e/acme/chat/app.js")
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestCopyDirRecursive(t *testing.T) {
	engine, fs := newEngine(t)
	require.NoError(t, fs.MkdirAll("/src/assets/css", 0755))
	require.NoError(t, fs.WriteFile("/src/assets/index.html", []byte("<html>"), 0644))
	require.NoError(t, fs.WriteFile("/src/assets/css/app.css", []byte("body{}"), 0644))

	require.NoError(t, engine.Copy("/src/assets", "/web/static/assets"))

	data, err := fs.ReadFile("/web/static/assets/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(data))

	data, err = fs.ReadFile("/web/static/assets/css/app.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestCopyEmptyDir(t *testing.T) {
	engine, fs := newEngine(t)
	require.NoError(t, fs.MkdirAll("/src/empty", 0755))

	require.NoError(t, engine.Copy("/src/empty", "/web/empty"))

	info, err := fs.Stat("/web/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCopyMissingSource(t *testing.T) {
	engine, _ := newEngine(t)

	err := engine.Copy("/src/missing.js", "/web/missing.js")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceMissing))
}

func TestCopyOverwritesExistingDestination(t *testing.T) {
	engine, fs := newEngine(t)
	require.NoError(t, fs.MkdirAll("/src", 0755))
	require.NoError(t, fs.WriteFile("/src/app.js", []byte("new"), 0644))
	require.NoError(t, fs.MkdirAll("/web", 0755))
	require.NoError(t, fs.WriteFile("/web/app.js", []byte("old"), 0644))

	require.NoError(t, engine.Copy("/src/app.js", "/web/app.js"))

	data, err := fs.ReadFile("/web/app.js")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestEnsureDir(t *testing.T) {
	engine, fs := newEngine(t)

	require.NoError(t, engine.EnsureDir("/a/b/c"))
	info, err := fs.Stat("/a/b/c")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	require.NoError(t, engine.EnsureDir("/a/b/c"))
}
