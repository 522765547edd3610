package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritmo-app/ritmo-engine/internal/adapters/handler/http/middleware"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{svc: svc}
}

type createHabitRequest struct {
	Title     string  `json:"title" binding:"required"`
	GoalType  string  `json:"goal_type"`
	Kind      string  `json:"kind" binding:"required"`
	Frequency string  `json:"frequency" binding:"required"`
	Unit      string  `json:"unit"`
	Target    float64 `json:"target"`
}

type updateHabitRequest struct {
	Title     string  `json:"title" binding:"required"`
	GoalType  string  `json:"goal_type"`
	Kind      string  `json:"kind" binding:"required"`
	Frequency string  `json:"frequency" binding:"required"`
	Unit      string  `json:"unit"`
	Target    float64 `json:"target"`
}

type repositionRequest struct {
	SortOrder int `json:"sort_order"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.PUT("/:id/position", h.Reposition)
		habits.POST("/:id/pause", h.Pause)
		habits.POST("/:id/unpause", h.Unpause)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/unarchive", h.Unarchive)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:    userID,
		Title:     req.Title,
		GoalType:  req.GoalType,
		Kind:      req.Kind,
		Frequency: req.Frequency,
		Unit:      req.Unit,
		Target:    req.Target,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	habits, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habits)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:        c.Param("id"),
		UserID:    userID,
		Title:     req.Title,
		GoalType:  req.GoalType,
		Kind:      req.Kind,
		Frequency: req.Frequency,
		Unit:      req.Unit,
		Target:    req.Target,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Reposition(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req repositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	habit, err := h.svc.Reposition(c.Request.Context(), c.Param("id"), userID, req.SortOrder)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Pause(c *gin.Context) {
	h.lifecycle(c, h.svc.Pause)
}

func (h *HabitHandler) Unpause(c *gin.Context) {
	h.lifecycle(c, h.svc.Unpause)
}

func (h *HabitHandler) Archive(c *gin.Context) {
	h.lifecycle(c, h.svc.Archive)
}

func (h *HabitHandler) Unarchive(c *gin.Context) {
	h.lifecycle(c, h.svc.Unarchive)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HabitHandler) lifecycle(c *gin.Context, action func(ctx context.Context, id, userID string) (*domain.Habit, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	habit, err := action(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}
