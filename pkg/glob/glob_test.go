package glob

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/types"
)

func newTestFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fs := filesystem.NewAfero(afero.NewMemMapFs())
	for path, content := range files {
		require.NoError(t, fs.MkdirAll("/pkg", 0755))
		require.NoError(t, fs.WriteFile("/pkg/"+path, []byte(content), 0644))
	}
	return fs
}

func rels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Rel)
	}
	return out
}

func TestIsContents(t *testing.T) {
	assert.True(t, IsContents("dist/*"))
	assert.True(t, IsContents("dist/**/*"))
	assert.True(t, IsContents("*"))
	assert.False(t, IsContents("dist/*.js"))
	assert.False(t, IsContents("dist/app.js"))
}

func TestExpandContentsMirrorsTree(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"dist/index.html": "<html>",
		"dist/css/app.css": "body{}",
	})

	items, mode, err := Expand(fs, "/pkg", "dist/*")
	require.NoError(t, err)
	assert.Equal(t, ModeContents, mode)

	// Directories are yielded before their contents.
	require.Len(t, items, 3)
	assert.Equal(t, []string{"css", "css/app.css", "index.html"}, rels(items))
	assert.True(t, items[0].IsDir)
	assert.False(t, items[1].IsDir)
	assert.Equal(t, "/pkg/dist/css/app.css", items[1].Source)
}

func TestExpandContentsRecursiveWildcard(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"dist/a/b/deep.js": "x",
	})

	items, mode, err := Expand(fs, "/pkg", "dist/**/*")
	require.NoError(t, err)
	assert.Equal(t, ModeContents, mode)
	assert.Equal(t, []string{"a", "a/b", "a/b/deep.js"}, rels(items))
}

func TestExpandContentsMissingParentIsSoft(t *testing.T) {
	fs := newTestFS(t, map[string]string{"other.txt": "x"})

	items, mode, err := Expand(fs, "/pkg", "dist/*")
	require.NoError(t, err)
	assert.Equal(t, ModeContents, mode)
	assert.Empty(t, items)
}

func TestExpandPatternSingleMatch(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"js/app.js":  "x",
		"js/app.css": "y",
	})

	items, mode, err := Expand(fs, "/pkg", "js/*.js")
	require.NoError(t, err)
	assert.Equal(t, ModePattern, mode)
	require.Len(t, items, 1)
	assert.Equal(t, "js/app.js", items[0].Rel)
	assert.Equal(t, "/pkg/js/app.js", items[0].Source)
	assert.False(t, items[0].IsDir)
}

func TestExpandPatternMultipleMatches(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"js/a.js": "x",
		"js/b.js": "y",
		"js/c.txt": "z",
	})

	items, _, err := Expand(fs, "/pkg", "js/*.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"js/a.js", "js/b.js"}, rels(items))
}

func TestExpandPatternWildcardDirectorySegment(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"mod-a/dist/out.js": "x",
		"mod-b/dist/out.js": "y",
	})

	items, _, err := Expand(fs, "/pkg", "mod-?/dist/out.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"mod-a/dist/out.js", "mod-b/dist/out.js"}, rels(items))
}

func TestExpandPatternMatchesDirectories(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"themes/dark/style.css": "x",
	})

	items, _, err := Expand(fs, "/pkg", "themes/d*")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "themes/dark", items[0].Rel)
	assert.True(t, items[0].IsDir)
}

func TestExpandPatternZeroMatchesIsSoft(t *testing.T) {
	fs := newTestFS(t, map[string]string{"js/app.js": "x"})

	items, mode, err := Expand(fs, "/pkg", "css/*.css")
	require.NoError(t, err)
	assert.Equal(t, ModePattern, mode)
	assert.Empty(t, items)
}

func TestExpandPatternInvalid(t *testing.T) {
	fs := newTestFS(t, map[string]string{"js/app.js": "x"})

	_, _, err := Expand(fs, "/pkg", "js/[unclosed")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGlobInvalid))
}
