package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"proofsheet/export"
	"proofsheet/models"
	"proofsheet/preview"
)

// Deriver produces a preview image from an uploaded original.
type Deriver interface {
	Derive(src io.Reader, dst string) error
}

// Upload is one file of a multipart upload, opened lazily.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// Service is the photographer- and client-facing API of the system.
type Service struct {
	store     ProjectStore
	gate      *Gate
	selection *Selection
	inv       Inventory
	deriver   Deriver
	maxUpload int
}

func NewService(store ProjectStore, inv Inventory, deriver Deriver, strictSelection bool) *Service {
	gate := NewGate(store)
	return &Service{
		store:     store,
		gate:      gate,
		selection: NewSelection(store, gate, inv, strictSelection),
		inv:       inv,
		deriver:   deriver,
	}
}

// WithUploadLimit caps the number of files accepted by one UploadPhotos call.
// Zero means no limit.
func (s *Service) WithUploadLimit(n int) *Service {
	s.maxUpload = n
	return s
}

func (s *Service) CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "project name is required"}
	}
	if ownerID == uuid.Nil {
		return nil, &models.ValidationError{Field: "owner_id", Message: "owner is required"}
	}
	return s.store.CreateProject(ctx, name, ownerID)
}

// ListProjects returns the owner's projects, newest first, with photo
// counts and cover images from the inventory.
func (s *Service) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.ProjectSummary, error) {
	start := time.Now()
	projects, err := s.store.ListProjectsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		count, cover, err := s.inv.CountPhotosAndCover(p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ProjectSummary{Project: p, PhotoCount: count, CoverImage: cover})
	}

	log.Printf("ListProjects: duration=%v owner=%s count=%d", time.Since(start), ownerID, len(summaries))
	return summaries, nil
}

func (s *Service) GetProject(ctx context.Context, projectID, requesterID uuid.UUID) (*models.Project, []models.FolderEntry, error) {
	project, err := s.gate.OwnedProject(ctx, projectID, requesterID)
	if err != nil {
		return nil, nil, err
	}
	folders, err := s.inv.ListGroups(project.ID)
	if err != nil {
		return nil, nil, err
	}
	return project, folders, nil
}

// DeleteProject removes the record, then purges the project's files.
func (s *Service) DeleteProject(ctx context.Context, projectID, requesterID uuid.UUID) error {
	project, err := s.gate.OwnedProject(ctx, projectID, requesterID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProject(ctx, project.ID); err != nil {
		return err
	}
	return s.inv.Purge(project.ID)
}

// UploadPhotos derives a preview for each upload into the given folder.
// It stops at the first failure and reports how many were saved.
func (s *Service) UploadPhotos(ctx context.Context, projectID, requesterID uuid.UUID, folder string, uploads []Upload) (int, error) {
	project, err := s.gate.OwnedProject(ctx, projectID, requesterID)
	if err != nil {
		return 0, err
	}

	folder, err = preview.CleanFolder(folder)
	if err != nil {
		return 0, &models.ValidationError{Field: "folder", Message: err.Error()}
	}
	if len(uploads) == 0 {
		return 0, &models.ValidationError{Field: "photos", Message: "no files uploaded"}
	}
	if s.maxUpload > 0 && len(uploads) > s.maxUpload {
		return 0, &models.ValidationError{
			Field:   "photos",
			Message: fmt.Sprintf("at most %d files per upload", s.maxUpload),
		}
	}

	dir := filepath.Join(s.inv.PreviewRoot(project.ID), folder)
	saved := 0
	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			return saved, err
		}
		if err := s.deriveOne(dir, up); err != nil {
			return saved, err
		}
		saved++
	}

	log.Printf("Uploaded photos: project=%s folder=%s count=%d", project.ID, folder, saved)
	return saved, nil
}

func (s *Service) deriveOne(dir string, up Upload) error {
	name, err := preview.CleanFilename(up.Filename)
	if err != nil {
		return &models.ValidationError{Field: "photos", Message: err.Error()}
	}

	src, err := up.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", name, err)
	}
	defer src.Close()

	if err := s.deriver.Derive(src, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to process %s: %w", name, err)
	}
	return nil
}

func (s *Service) GenerateLink(ctx context.Context, projectID, requesterID uuid.UUID) (*models.Project, string, error) {
	return s.selection.GenerateLink(ctx, projectID, requesterID)
}

// ClientGallery is the anonymous, token-authorized view of a project.
func (s *Service) ClientGallery(ctx context.Context, token string) (*models.Project, []models.FolderEntry, error) {
	project, err := s.gate.AuthorizeTokenAccess(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	folders, err := s.inv.ListGroups(project.ID)
	if err != nil {
		return nil, nil, err
	}
	return project, folders, nil
}

func (s *Service) SubmitSelection(ctx context.Context, token string, chosen []string) (*models.Project, error) {
	return s.selection.RecordSelection(ctx, token, chosen)
}

// ExportScript builds the copy script for an owned project. With nothing
// selected the header-only script is returned along with
// models.ErrNoSelection.
func (s *Service) ExportScript(ctx context.Context, projectID, requesterID uuid.UUID) (*export.Script, error) {
	project, err := s.gate.OwnedProject(ctx, projectID, requesterID)
	if err != nil {
		return nil, err
	}

	script, err := export.Build(project)
	if errors.Is(err, models.ErrNoSelection) {
		log.Printf("Export requested with no selection: project=%s", project.ID)
	}
	return script, err
}
