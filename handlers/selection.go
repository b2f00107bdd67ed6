package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proofsheet/inventory"
	"proofsheet/models"
	"proofsheet/workflow"
)

// ClientGallery serves the grouped preview listing to a token holder.
func ClientGallery(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, folders, err := svc.ClientGallery(c.Request.Context(), c.Param("token"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ClientGalleryResponse{
			ProjectID: project.ID,
			Name:      project.Name,
			Status:    project.Status,
			Folders:   folders,
		})
	}
}

// SubmitSelection records the client's choice. JSON bodies may carry
// "selected" as a string or an array; form posts may repeat the field.
func SubmitSelection(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		chosen, err := bindSelection(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := svc.SubmitSelection(c.Request.Context(), c.Param("token"), chosen)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   project.Status,
			"selected": len(project.Selected),
		})
	}
}

func bindSelection(c *gin.Context) ([]string, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req models.SubmitSelectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return models.CoerceSelection(req.Selected)
	}

	values := c.PostFormArray("selected")
	if len(values) == 0 {
		values = c.PostFormArray("selected[]")
	}
	return models.CoerceSelection(values)
}

// ServePreview streams one preview image: /previews/:projectId/:folder/:file.
func ServePreview(inv *inventory.Inventory) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("projectId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "preview not found"})
			return
		}

		full, err := inv.ResolvePreview(projectID, c.Param("folder"), c.Param("file"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.File(full)
	}
}
