package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/common/middleware"
	"twitch-giveaway-backend/internal/features/auth/models"
	"twitch-giveaway-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service *service.Service
}

func NewAuthHandler(service *service.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
	}
}

// @Summary Log in with admin credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.SendError(c, errors.NewValidationError("body", err.Error()))
		return
	}

	session, err := h.service.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		middleware.SendError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, session.ID, 7*24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "channel": session.Channel})
}

// @Summary Log out and drop the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	if id, err := c.Cookie(middleware.SessionCookie); err == nil {
		_ = h.service.Logout(c.Request.Context(), id)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
