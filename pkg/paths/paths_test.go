package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyaikeedo/apub/pkg/config"
)

func newTestPaths(t *testing.T) (*Paths, string) {
	t.Helper()
	root := t.TempDir()
	p, err := New(root, config.Default())
	require.NoError(t, err)
	return p, root
}

func TestDefaultLayout(t *testing.T) {
	p, root := newTestPaths(t)

	assert.Equal(t, root, p.Root())
	assert.Equal(t, filepath.Join(root, "public"), p.WebRoot())
	assert.Equal(t, filepath.Join(root, "vendor"), p.VendorDir())
	assert.Equal(t, filepath.Join(root, "vendor", "aikeedo-file-mappings.json"), p.MappingFile())
	assert.Equal(t, filepath.Join(root, "public", "e"), p.AssetRoot())
	assert.Equal(t, filepath.Join(root, "extra", "plugins"), p.PluginsDir())
	assert.Equal(t, filepath.Join(root, "extra", "themes"), p.ThemesDir())
}

func TestAssetDir(t *testing.T) {
	p, root := newTestPaths(t)

	assert.Equal(t, filepath.Join(root, "public", "e", "acme", "chat"), p.AssetDir("acme/chat"))
	assert.Equal(t, filepath.Join(root, "public", "e", "acme"), p.VendorAssetDir("acme"))
}

func TestAbsoluteConfigValuesKeptVerbatim(t *testing.T) {
	cfg := config.Default()
	cfg.WebRoot = "/srv/www"
	p, err := New(t.TempDir(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www", p.WebRoot())
}

func TestRelativeToWebRoot(t *testing.T) {
	p, root := newTestPaths(t)

	inside := filepath.Join(root, "public", "assets", "app.css")
	assert.Equal(t, filepath.Join("assets", "app.css"), p.RelativeToWebRoot(inside))

	outside := filepath.Join(root, "elsewhere", "app.css")
	assert.Equal(t, outside, p.RelativeToWebRoot(outside))
}

func TestQualifyDestination(t *testing.T) {
	p, root := newTestPaths(t)

	assert.Equal(t, filepath.Join(root, "public", "assets", "app.css"),
		p.QualifyDestination(filepath.Join("assets", "app.css")))

	// Already-absolute destinations are kept as-is.
	assert.Equal(t, "/srv/shared/app.css", p.QualifyDestination("/srv/shared/app.css"))
}

func TestQualifyRoundTrip(t *testing.T) {
	p, _ := newTestPaths(t)

	dest := filepath.Join(p.WebRoot(), "e", "acme", "chat", "app.js")
	assert.Equal(t, dest, p.QualifyDestination(p.RelativeToWebRoot(dest)))
}
