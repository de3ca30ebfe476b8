package bundlefile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_CreatesFileWithContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := WriteAtomic(fs, "/out/bundle.json", []byte(`{"ok":true}`))
	require.NoError(t, err)

	content, err := Read(fs, "/out/bundle.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(content))
}

func TestWriteAtomic_CreatesMissingParentDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := WriteAtomic(fs, "/a/b/c/bundle.json", []byte("x"))
	require.NoError(t, err)

	exists, err := afero.Exists(fs, "/a/b/c/bundle.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteAtomic_OverwritesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bundle.json", []byte("old"), 0o644))

	require.NoError(t, WriteAtomic(fs, "/bundle.json", []byte("new")))

	content, err := Read(fs, "/bundle.json")
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestRead_MissingFileReturnsError(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Read(fs, "/missing.json")
	assert.Error(t, err)
}
