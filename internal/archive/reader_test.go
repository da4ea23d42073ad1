// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip file at path with the given name→content entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestOpenAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.3mf")
	writeZip(t, path, map[string]string{
		"Metadata/project_settings.config": `{"layer_height":"0.2"}`,
		"3D/3dmodel.model":                 `<model/>`,
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.True(t, r.Has("3D/3dmodel.model"))
	assert.False(t, r.Has("Metadata/model_settings.config"))
	assert.Len(t, r.Entries(), 2)

	text, err := r.ReadText("Metadata/project_settings.config")
	require.NoError(t, err)
	assert.Equal(t, `{"layer_height":"0.2"}`, text)
}

func TestOpenNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.3mf")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.3mf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestReadMissingEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.3mf")
	writeZip(t, path, map[string]string{"3D/3dmodel.model": "<model/>"})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadText("Metadata/project_settings.config")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
