package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a project's review cycle.
// Transitions only move forward: New -> UnderSelection -> Completed.
// Generating a new link from Completed re-opens the project to UnderSelection.
type Status string

const (
	StatusNew            Status = "New"
	StatusUnderSelection Status = "UnderSelection"
	StatusCompleted      Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusUnderSelection, StatusCompleted:
		return true
	}
	return false
}

// Project is a photography session: uploaded previews, review status and
// the client's selection. Token is nil until a share link is generated.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Status    Status    `json:"status" db:"status"`
	Token     *string   `json:"token,omitempty" db:"token"`
	Selected  []string  `json:"selected" db:"selected"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasToken reports whether a share link is currently live.
func (p *Project) HasToken() bool {
	return p.Token != nil && *p.Token != ""
}

// ProjectSummary is a project enriched with inventory counts for dashboards.
type ProjectSummary struct {
	Project
	PhotoCount int     `json:"photo_count"`
	CoverImage *string `json:"cover_image"`
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=255"`
}

// ProjectsResponse is the response format for a photographer's dashboard.
type ProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
	Total    int              `json:"total"`
}

// ProjectDetailResponse is the owner's view of one project.
type ProjectDetailResponse struct {
	Project Project       `json:"project"`
	Folders []FolderEntry `json:"folders"`
}

// ShareLinkResponse is returned after generating a client link.
type ShareLinkResponse struct {
	Token     string `json:"token"`
	ClientURL string `json:"client_url"`
}

// ClientGalleryResponse is what a token holder sees.
type ClientGalleryResponse struct {
	ProjectID uuid.UUID     `json:"project_id"`
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Folders   []FolderEntry `json:"folders"`
}

// EncodeSelection serializes a selection for the projects.selected column.
// A nil or empty selection encodes as "[]".
func EncodeSelection(selected []string) (string, error) {
	if selected == nil {
		selected = []string{}
	}
	data, err := json.Marshal(selected)
	if err != nil {
		return "", fmt.Errorf("failed to encode selection: %w", err)
	}
	return string(data), nil
}

// DecodeSelection is the inverse of EncodeSelection. Blank input yields an
// empty, non-nil slice.
func DecodeSelection(raw string) ([]string, error) {
	selected := []string{}
	if strings.TrimSpace(raw) == "" {
		return selected, nil
	}
	if err := json.Unmarshal([]byte(raw), &selected); err != nil {
		return nil, fmt.Errorf("failed to decode selection: %w", err)
	}
	if selected == nil {
		selected = []string{}
	}
	return selected, nil
}
