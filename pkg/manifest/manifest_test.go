package manifest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyaikeedo/apub/pkg/errors"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/types"
)

func writeManifest(t *testing.T, content string) types.FS {
	t.Helper()
	fs := filesystem.NewAfero(afero.NewMemMapFs())
	require.NoError(t, fs.MkdirAll("/pkg", 0755))
	require.NoError(t, fs.WriteFile("/pkg/composer.json", []byte(content), 0644))
	return fs
}

func TestLoad(t *testing.T) {
	fs := writeManifest(t, `{
		"name": "acme/chat",
		"type": "aikeedo-plugin",
		"extra": {
			"public": [
				"widget/dist/file.js",
				{"source": "assets", "target": "/static/assets"}
			]
		}
	}`)

	pkg, err := Load(fs, "/pkg")
	require.NoError(t, err)

	assert.Equal(t, "acme/chat", pkg.Name)
	assert.Equal(t, "aikeedo-plugin", pkg.Type)
	assert.Equal(t, "/pkg", pkg.InstallDir)
	require.Len(t, pkg.Public, 2)
}

func TestLoadMissingFile(t *testing.T) {
	fs := filesystem.NewAfero(afero.NewMemMapFs())

	_, err := Load(fs, "/pkg")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestRead))
}

func TestLoadMalformedJSON(t *testing.T) {
	fs := writeManifest(t, `{"name": "acme/chat",`)

	_, err := Load(fs, "/pkg")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestLoadPublicAbsentOrMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no extra", `{"name": "a/b", "type": "aikeedo-plugin"}`},
		{"no public", `{"name": "a/b", "type": "aikeedo-plugin", "extra": {}}`},
		{"public is object", `{"name": "a/b", "type": "aikeedo-plugin", "extra": {"public": {"k": "v"}}}`},
		{"public is string", `{"name": "a/b", "type": "aikeedo-plugin", "extra": {"public": "assets"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeManifest(t, tt.content)
			pkg, err := Load(fs, "/pkg")
			require.NoError(t, err)
			assert.Empty(t, pkg.Public)
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := []any{
		"widget/dist/file.js",
		map[string]any{"source": "assets", "target": "/static/assets"},
		map[string]any{"source": "dist/*"},
	}

	entries := Normalize(raw)
	require.Len(t, entries, 3)

	assert.Equal(t, types.Entry{Kind: types.EntryLegacy, Source: "widget/dist/file.js"}, entries[0])
	assert.Equal(t, types.Entry{Kind: types.EntrySourceTarget, Source: "assets", Target: "/static/assets"}, entries[1])
	assert.Equal(t, types.Entry{Kind: types.EntrySourceTarget, Source: "dist/*", Target: ""}, entries[2])
}

func TestNormalizeSkipsMalformed(t *testing.T) {
	raw := []any{
		float64(42),
		map[string]any{"target": "/nowhere"},
		map[string]any{"source": ""},
		"",
		"valid.js",
	}

	entries := Normalize(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, "valid.js", entries[0].Source)
}

func TestNormalizeNonStringTargetIgnored(t *testing.T) {
	raw := []any{
		map[string]any{"source": "assets", "target": float64(1)},
	}

	entries := Normalize(raw)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Target)
}

func TestNormalizePreservesOrder(t *testing.T) {
	raw := []any{"a.js", "b.js", "c.js"}

	entries := Normalize(raw)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.js", entries[0].Source)
	assert.Equal(t, "b.js", entries[1].Source)
	assert.Equal(t, "c.js", entries[2].Source)
}
