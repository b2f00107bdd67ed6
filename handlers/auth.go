package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proofsheet/auth"
	"proofsheet/models"
)

func Signup(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CredentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, token, err := svc.Signup(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: *user})
	}
}

func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CredentialsRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: *user})
	}
}
