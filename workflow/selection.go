package workflow

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"proofsheet/models"
)

// Inventory is the filesystem view of a project's previews.
type Inventory interface {
	ListGroups(projectID uuid.UUID) ([]models.FolderEntry, error)
	CountPhotosAndCover(projectID uuid.UUID) (int, *string, error)
	Paths(projectID uuid.UUID) (map[string]bool, error)
	PreviewRoot(projectID uuid.UUID) string
	Purge(projectID uuid.UUID) error
}

// Selection drives a project through New -> UnderSelection -> Completed.
type Selection struct {
	store    ProjectStore
	gate     *Gate
	inv      Inventory
	strict   bool
	newToken func() string
}

// NewSelection builds the workflow. With strict set, submitted paths must
// exist in a fresh inventory scan.
func NewSelection(store ProjectStore, gate *Gate, inv Inventory, strict bool) *Selection {
	return &Selection{
		store:    store,
		gate:     gate,
		inv:      inv,
		strict:   strict,
		newToken: func() string { return uuid.NewString() },
	}
}

// GenerateLink mints a fresh token for an owned project and moves it under
// selection. Completed projects are re-opened. Any previous token stops
// working.
func (s *Selection) GenerateLink(ctx context.Context, projectID, requesterID uuid.UUID) (*models.Project, string, error) {
	project, err := s.gate.OwnedProject(ctx, projectID, requesterID)
	if err != nil {
		return nil, "", err
	}

	token := s.newToken()
	for project.HasToken() && token == *project.Token {
		token = s.newToken()
	}

	updated, err := s.store.SetToken(ctx, project.ID, token)
	if err != nil {
		return nil, "", err
	}

	log.Printf("Share link generated: project=%s previous_status=%s", project.ID, project.Status)
	return updated, token, nil
}

// RecordSelection stores the client's chosen paths, in order, and completes
// the project. Lenient mode records an empty submission as is. The write is keyed by token, so a link regenerated in the
// meantime rejects the submission as not found.
func (s *Selection) RecordSelection(ctx context.Context, token string, chosen []string) (*models.Project, error) {
	project, err := s.gate.AuthorizeTokenAccess(ctx, token)
	if err != nil {
		return nil, err
	}

	if len(chosen) == 0 && s.strict {
		return nil, &models.ValidationError{Field: "selected", Message: "at least one photo must be selected"}
	}
	for _, p := range chosen {
		if err := ValidatePath(p); err != nil {
			return nil, err
		}
	}

	if s.strict {
		available, err := s.inv.Paths(project.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range chosen {
			if !available[p] {
				return nil, &models.ValidationError{
					Field:   "selected",
					Message: fmt.Sprintf("%q is not part of this gallery", p),
				}
			}
		}
	}

	updated, err := s.store.RecordSelection(ctx, token, chosen)
	if err != nil {
		return nil, err
	}

	log.Printf("Selection recorded: project=%s count=%d", updated.ID, len(chosen))
	return updated, nil
}

// ValidatePath accepts clean, relative, forward-slash paths that stay inside
// the project tree and are safe to quote in the export script.
func ValidatePath(p string) error {
	invalid := func(msg string) error {
		return &models.ValidationError{Field: "selected", Message: fmt.Sprintf("%q %s", p, msg)}
	}

	switch {
	case strings.TrimSpace(p) == "":
		return invalid("is empty")
	case strings.HasPrefix(p, "/"):
		return invalid("must be relative")
	case strings.ContainsAny(p, "\\\":*?<>|\x00"):
		return invalid("contains reserved characters")
	case path.Clean(p) != p:
		return invalid("is not a clean path")
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." || segment == "." {
			return invalid("escapes the project folder")
		}
	}
	return nil
}
