package controller

import (
	"errors"
	"net/http"

	"github.com/camereta/studio-booking/internal/auth"
	"github.com/camereta/studio-booking/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, admin, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong, try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

func (h *Handlers) verify(c *gin.Context) {
	admin := c.MustGet(auth.ContextKey).(*model.AdminUser)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"admin": admin,
	})
}
