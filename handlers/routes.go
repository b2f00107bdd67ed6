package handlers

import (
	"github.com/gin-gonic/gin"

	"proofsheet/auth"
	"proofsheet/config"
	"proofsheet/inventory"
	"proofsheet/middleware"
	"proofsheet/workflow"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Config    *config.Config
	Auth      *auth.Service
	Projects  *workflow.Service
	Inventory *inventory.Inventory
}

// Register mounts every route on r.
func Register(r *gin.Engine, deps Deps) {
	r.GET("/health", HealthCheck)
	r.GET("/previews/:projectId/:folder/:file", ServePreview(deps.Inventory))
	// client_url target handed out with every share link
	r.GET("/select/:token", ClientGallery(deps.Projects))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", Signup(deps.Auth))
	authGroup.POST("/login", Login(deps.Auth))

	selectGroup := api.Group("/select")
	selectGroup.GET("/:token", ClientGallery(deps.Projects))
	selectGroup.POST("/:token", SubmitSelection(deps.Projects))

	projects := api.Group("/projects")
	projects.Use(middleware.AuthRequired(deps.Config.JWTSecret))
	projects.POST("", CreateProject(deps.Projects))
	projects.GET("", ListProjects(deps.Projects))
	projects.GET("/:id", GetProject(deps.Projects))
	projects.DELETE("/:id", DeleteProject(deps.Projects))
	projects.POST("/:id/photos", UploadPhotos(deps.Projects))
	projects.POST("/:id/link", GenerateLink(deps.Projects, deps.Config))
	projects.GET("/:id/export", ExportScript(deps.Projects))
}
