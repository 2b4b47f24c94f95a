package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vendorhub/internal/storage"
)

func newLocalStore(t *testing.T) (*storage.LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("failed to create local store: %v", err)
	}
	return store, dir
}

func TestLocalStore_SaveAndRead(t *testing.T) {
	store, _ := newLocalStore(t)
	ctx := context.Background()

	err := store.SaveFile("taxdocs/tok-1/w9.pdf", strings.NewReader("pdf bytes"))
	assert.NoError(t, err)

	exists, size, err := store.FileExists(ctx, "taxdocs/tok-1/w9.pdf")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(len("pdf bytes")), size)

	rc, err := store.ReadFile("taxdocs/tok-1/w9.pdf")
	assert.NoError(t, err)
	defer rc.Close()
	contents, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(contents))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, _ := newLocalStore(t)
	ctx := context.Background()

	for _, key := range []string{"../outside.pdf", "taxdocs/../../outside.pdf", "/etc/passwd", "."} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, store.SaveFile(key, strings.NewReader("x")))

			_, _, err := store.FileExists(ctx, key)
			assert.Error(t, err)
		})
	}
}

func TestLocalStore_Delete(t *testing.T) {
	store, _ := newLocalStore(t)
	ctx := context.Background()

	assert.NoError(t, store.SaveFile("taxdocs/tok-1/w9.pdf", strings.NewReader("pdf bytes")))
	assert.NoError(t, store.DeleteFile(ctx, "taxdocs/tok-1/w9.pdf"))

	exists, _, err := store.FileExists(ctx, "taxdocs/tok-1/w9.pdf")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, store.DeleteFile(ctx, "taxdocs/tok-1/w9.pdf"))
}

func TestLocalStore_ListStale(t *testing.T) {
	store, dir := newLocalStore(t)
	ctx := context.Background()

	assert.NoError(t, store.SaveFile("taxdocs/old/w9.pdf", strings.NewReader("old")))
	assert.NoError(t, store.SaveFile("taxdocs/new/w9.pdf", strings.NewReader("new")))

	past := time.Now().Add(-10 * 24 * time.Hour)
	oldPath := filepath.Join(dir, "taxdocs", "old", "w9.pdf")
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("failed to age file: %v", err)
	}

	stale, err := store.ListStale(ctx, time.Now().Add(-7*24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, []string{"taxdocs/old/w9.pdf"}, stale)
}
