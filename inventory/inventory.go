package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"proofsheet/models"
)

// PreviewDir is the per-project subdirectory holding low-resolution previews.
const PreviewDir = "lowres"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Inventory scans project preview trees under a single root directory.
// It holds no mutable state and is safe for concurrent use.
type Inventory struct {
	root string
}

func New(root string) *Inventory {
	return &Inventory{root: root}
}

// ProjectDir is the on-disk home of every asset belonging to a project.
func (inv *Inventory) ProjectDir(projectID uuid.UUID) string {
	return filepath.Join(inv.root, projectID.String())
}

// PreviewRoot is where a project's preview folders live.
func (inv *Inventory) PreviewRoot(projectID uuid.UUID) string {
	return filepath.Join(inv.ProjectDir(projectID), PreviewDir)
}

// IsImage reports whether name carries an accepted image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListGroups returns the project's immediate preview subfolders, sorted by
// name, each with its image files sorted by name. A missing root yields an
// empty listing.
func (inv *Inventory) ListGroups(projectID uuid.UUID) ([]models.FolderEntry, error) {
	start := time.Now()
	groups := []models.FolderEntry{}

	base := inv.PreviewRoot(projectID)
	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return groups, nil
		}
		return nil, fmt.Errorf("failed to read preview root: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		images, err := listImages(filepath.Join(base, entry.Name()))
		if err != nil {
			return nil, err
		}
		groups = append(groups, models.FolderEntry{Name: entry.Name(), Images: images})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	log.Printf("ListGroups: duration=%v project=%s folders=%d", time.Since(start), projectID, len(groups))
	return groups, nil
}

// CountPhotosAndCover totals the images across all folders. The cover is the
// first image of the first non-empty folder, as "<projectId>/<folder>/<file>".
func (inv *Inventory) CountPhotosAndCover(projectID uuid.UUID) (int, *string, error) {
	groups, err := inv.ListGroups(projectID)
	if err != nil {
		return 0, nil, err
	}

	count := 0
	var cover *string
	for _, g := range groups {
		count += len(g.Images)
		if cover == nil && len(g.Images) > 0 {
			p := path.Join(projectID.String(), g.Name, g.Images[0])
			cover = &p
		}
	}
	return count, cover, nil
}

// Paths flattens the listing into "<folder>/<file>" relative paths.
func (inv *Inventory) Paths(projectID uuid.UUID) (map[string]bool, error) {
	groups, err := inv.ListGroups(projectID)
	if err != nil {
		return nil, err
	}
	paths := make(map[string]bool)
	for _, g := range groups {
		for _, img := range g.Images {
			paths[g.Name+"/"+img] = true
		}
	}
	return paths, nil
}

// ResolvePreview maps a folder and file name to the preview on disk.
// Names must be single path segments.
func (inv *Inventory) ResolvePreview(projectID uuid.UUID, folder, file string) (string, error) {
	if !isSegment(folder) || !isSegment(file) {
		return "", &models.ValidationError{Field: "path", Message: "invalid preview path"}
	}
	if !IsImage(file) {
		return "", models.ErrNotFound
	}
	full := filepath.Join(inv.PreviewRoot(projectID), folder, file)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", models.ErrNotFound
	}
	return full, nil
}

// Purge removes every asset stored for a project. Missing directories are
// not an error.
func (inv *Inventory) Purge(projectID uuid.UUID) error {
	dir := inv.ProjectDir(projectID)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to purge project assets: %w", err)
	}
	log.Printf("Purged project assets: %s", dir)
	return nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", filepath.Base(dir), err)
	}
	images := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		images = append(images, entry.Name())
	}
	sort.Strings(images)
	return images, nil
}

func isSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
