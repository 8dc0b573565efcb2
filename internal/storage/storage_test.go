package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	_, err := New(dir)
	require.NoError(t, err)
	_, err = New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPutGeneratesUniqueNamesKeepingExtension(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	url1, err := store.Put("beach.JPG", []byte("one"))
	require.NoError(t, err)
	url2, err := store.Put("beach.JPG", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
	for _, url := range []string{url1, url2} {
		assert.True(t, strings.HasPrefix(url, PublicPrefix+"/"), url)
		assert.True(t, strings.HasSuffix(url, ".JPG"), url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), path.Base(url1)))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestPutWithoutExtension(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	url, err := store.Put("snapshot", []byte("raw"))
	require.NoError(t, err)
	assert.Empty(t, path.Ext(url))
}

func TestRemove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	url, err := store.Put("a.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))
	_, statErr := os.Stat(filepath.Join(store.Dir(), path.Base(url)))
	assert.True(t, os.IsNotExist(statErr))

	assert.Error(t, store.Remove(url)) // already gone
	assert.Error(t, store.Remove(".."))
}
