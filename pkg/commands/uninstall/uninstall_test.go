package uninstall

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heyaikeedo/apub/pkg/commands/install"
	"github.com/heyaikeedo/apub/pkg/filesystem"
	"github.com/heyaikeedo/apub/pkg/types"
)

func installedFixture(t *testing.T) types.FS {
	t.Helper()
	fs := filesystem.NewAfero(afero.NewMemMapFs())
	dir := "/project/extra/plugins/acme/chat"
	require.NoError(t, fs.MkdirAll(dir, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "composer.json"), []byte(`{
		"name": "acme/chat",
		"type": "aikeedo-plugin",
		"extra": {"public": ["file.js"]}
	}`), 0644))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "file.js"), []byte("js"), 0644))

	_, err := install.Install(install.Options{
		ProjectRoot: "/project",
		PackageDir:  dir,
		FileSystem:  fs,
	})
	require.NoError(t, err)
	return fs
}

func TestUninstall(t *testing.T) {
	fs := installedFixture(t)

	err := Uninstall(Options{
		ProjectRoot: "/project",
		PackageName: "acme/chat",
		FileSystem:  fs,
	})
	require.NoError(t, err)

	_, statErr := fs.Stat("/project/public/e/acme/chat/file.js")
	assert.Error(t, statErr)
}

func TestUninstallAfterPackageFilesGone(t *testing.T) {
	fs := installedFixture(t)
	require.NoError(t, fs.RemoveAll("/project/extra/plugins/acme/chat"))

	err := Uninstall(Options{
		ProjectRoot: "/project",
		PackageName: "acme/chat",
		FileSystem:  fs,
	})
	require.NoError(t, err)

	_, statErr := fs.Stat("/project/public/e/acme/chat/file.js")
	assert.Error(t, statErr)
}

func TestUninstallUnknownPackageIsNoOp(t *testing.T) {
	fs := filesystem.NewAfero(afero.NewMemMapFs())

	err := Uninstall(Options{
		ProjectRoot: "/project",
		PackageName: "no/such",
		FileSystem:  fs,
	})
	assert.NoError(t, err)
}
