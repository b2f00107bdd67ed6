package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proofsheet/config"
	"proofsheet/middleware"
	"proofsheet/models"
	"proofsheet/workflow"
)

func CreateProject(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBind(&req); err != nil {
			log.Printf("Bind error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := svc.CreateProject(c.Request.Context(), req.Name, middleware.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func ListProjects(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := svc.ListProjects(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func GetProject(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectIDParam(c)
		if !ok {
			return
		}

		project, folders, err := svc.GetProject(c.Request.Context(), projectID, middleware.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectDetailResponse{Project: *project, Folders: folders})
	}
}

func DeleteProject(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectIDParam(c)
		if !ok {
			return
		}

		if err := svc.DeleteProject(c.Request.Context(), projectID, middleware.UserID(c)); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

func UploadPhotos(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectIDParam(c)
		if !ok {
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
			return
		}

		files := form.File["photos"]

		uploads := make([]workflow.Upload, 0, len(files))
		for _, fh := range files {
			uploads = append(uploads, fileUpload(fh))
		}

		saved, err := svc.UploadPhotos(c.Request.Context(), projectID, middleware.UserID(c), c.PostForm("folder"), uploads)
		if err != nil {
			log.Printf("UploadPhotos: project=%s saved=%d err=%v", projectID, saved, err)
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "saved": saved})
	}
}

func GenerateLink(svc *workflow.Service, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectIDParam(c)
		if !ok {
			return
		}

		_, token, err := svc.GenerateLink(c.Request.Context(), projectID, middleware.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ShareLinkResponse{
			Token:     token,
			ClientURL: cfg.ClientURL(token),
		})
	}
}

func ExportScript(svc *workflow.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := projectIDParam(c)
		if !ok {
			return
		}

		script, err := svc.ExportScript(c.Request.Context(), projectID, middleware.UserID(c))
		if err != nil && !errors.Is(err, models.ErrNoSelection) {
			respondError(c, err)
			return
		}
		if err != nil {
			c.Header("X-Selection-Warning", models.KindNoSelection)
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, script.Filename))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(script.Text()))
	}
}

func projectIDParam(c *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return uuid.Nil, false
	}
	return projectID, true
}

func fileUpload(fh *multipart.FileHeader) workflow.Upload {
	return workflow.Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
