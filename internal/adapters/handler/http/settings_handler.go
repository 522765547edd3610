package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritmo-app/ritmo-engine/internal/adapters/handler/http/middleware"
	"github.com/ritmo-app/ritmo-engine/internal/core/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type updateSettingsRequest struct {
	WeekStartsOn *int `json:"week_starts_on" binding:"required"`
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", h.Get)
	router.PUT("/settings", h.Update)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settings, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WeekStartsOn == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_starts_on is required (0 or 1)"})
		return
	}

	settings, err := h.svc.SetWeekStart(c.Request.Context(), userID, *req.WeekStartsOn)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
