package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"proofsheet/models"
)

// ProjectStore is the persistence the workflow depends on.
type ProjectStore interface {
	CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	GetProjectByToken(ctx context.Context, token string) (*models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	SetToken(ctx context.Context, projectID uuid.UUID, token string) (*models.Project, error)
	RecordSelection(ctx context.Context, token string, selected []string) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

// Gate decides who may act on a project. Owners may mutate their own
// projects; anyone holding the current token may read the gallery and
// submit a selection.
type Gate struct {
	store ProjectStore
}

func NewGate(store ProjectStore) *Gate {
	return &Gate{store: store}
}

// AuthorizeOwnerAction returns models.ErrForbidden unless requesterID owns
// the project. A nil requester never matches.
func (g *Gate) AuthorizeOwnerAction(project *models.Project, requesterID uuid.UUID) error {
	if project == nil || requesterID == uuid.Nil || project.OwnerID != requesterID {
		return models.ErrForbidden
	}
	return nil
}

// OwnedProject loads a project and checks ownership in one step.
func (g *Gate) OwnedProject(ctx context.Context, projectID, requesterID uuid.UUID) (*models.Project, error) {
	project, err := g.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := g.AuthorizeOwnerAction(project, requesterID); err != nil {
		return nil, err
	}
	return project, nil
}

// AuthorizeTokenAccess resolves the project currently holding token.
func (g *Gate) AuthorizeTokenAccess(ctx context.Context, token string) (*models.Project, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("share link %w", models.ErrNotFound)
	}
	project, err := g.store.GetProjectByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("share link %w", models.ErrNotFound)
		}
		return nil, err
	}
	return project, nil
}
