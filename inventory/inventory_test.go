package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofsheet/models"
)

func writeFiles(t *testing.T, inv *Inventory, projectID uuid.UUID, files map[string][]string) {
	t.Helper()
	for folder, names := range files {
		dir := filepath.Join(inv.PreviewRoot(projectID), folder)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}
	}
}

func TestListGroups_MissingRoot(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()

	groups, err := inv.ListGroups(id)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	count, cover, err := inv.CountPhotosAndCover(id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Nil(t, cover)
}

func TestListGroups_FiltersAndSorts(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()

	writeFiles(t, inv, id, map[string][]string{
		"Reception": {"z.PNG", "notes.txt", "a.jpeg"},
		"Ceremony":  {"b.jpg", "a.JPG", "raw.cr2"},
		"Empty":     {},
	})
	// nested folders and loose files at the root are ignored
	require.NoError(t, os.MkdirAll(filepath.Join(inv.PreviewRoot(id), "Ceremony", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inv.PreviewRoot(id), "loose.jpg"), []byte("x"), 0o644))

	groups, err := inv.ListGroups(id)
	require.NoError(t, err)

	assert.Equal(t, []models.FolderEntry{
		{Name: "Ceremony", Images: []string{"a.JPG", "b.jpg"}},
		{Name: "Empty", Images: []string{}},
		{Name: "Reception", Images: []string{"a.jpeg", "z.PNG"}},
	}, groups)
}

func TestCountPhotosAndCover(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()

	writeFiles(t, inv, id, map[string][]string{
		"Ceremony":  {"a.jpg", "b.jpg"},
		"Reception": {"c.png"},
	})

	count, cover, err := inv.CountPhotosAndCover(id)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NotNil(t, cover)
	assert.Equal(t, id.String()+"/Ceremony/a.jpg", *cover)
}

func TestCountPhotosAndCover_SkipsEmptyFolders(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()

	writeFiles(t, inv, id, map[string][]string{
		"A-empty": {"readme.txt"},
		"B":       {"x.png"},
	})

	count, cover, err := inv.CountPhotosAndCover(id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NotNil(t, cover)
	assert.Equal(t, id.String()+"/B/x.png", *cover)
}

func TestPaths(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()
	writeFiles(t, inv, id, map[string][]string{"A": {"1.jpg"}, "B": {"2.png"}})

	paths, err := inv.Paths(id)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A/1.jpg": true, "B/2.png": true}, paths)
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.Png", true},
		{"a.gif", false},
		{"jpg", false},
		{"a.jpg.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsImage(tt.name))
		})
	}
}

func TestResolvePreview(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()
	writeFiles(t, inv, id, map[string][]string{"A": {"1.jpg"}})

	full, err := inv.ResolvePreview(id, "A", "1.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(inv.PreviewRoot(id), "A", "1.jpg"), full)

	_, err = inv.ResolvePreview(id, "..", "1.jpg")
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = inv.ResolvePreview(id, "A", "missing.jpg")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestPurge(t *testing.T) {
	inv := New(t.TempDir())
	id := uuid.New()
	writeFiles(t, inv, id, map[string][]string{"A": {"1.jpg"}})

	require.NoError(t, inv.Purge(id))
	_, err := os.Stat(inv.ProjectDir(id))
	assert.True(t, os.IsNotExist(err))

	// second purge is a no-op
	assert.NoError(t, inv.Purge(id))
}
