package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritmo-app/ritmo-engine/internal/adapters/handler/http/middleware"
	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/services"
)

type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

type upsertEntryRequest struct {
	HabitID string  `json:"habit_id" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	Value   float64 `json:"value"`
}

type adjustEntryRequest struct {
	HabitID string  `json:"habit_id" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	Delta   float64 `json:"delta" binding:"required"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.PUT("", h.Upsert)
		entries.POST("/adjust", h.Adjust)
		entries.GET("", h.ListByHabit)
		entries.DELETE("", h.Delete)
	}
}

// Upsert overwrites the single entry for habit+date; last write wins.
func (h *EntryHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.svc.Upsert(c.Request.Context(), services.UpsertEntryInput{
		HabitID: req.HabitID,
		UserID:  userID,
		Date:    req.Date,
		Value:   req.Value,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Adjust increments or decrements the day's value. Reaching zero deletes the
// entry, reported as 204.
func (h *EntryHandler) Adjust(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req adjustEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.svc.Adjust(c.Request.Context(), req.HabitID, userID, req.Date, req.Delta)
	if err != nil {
		handleError(c, err)
		return
	}

	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) ListByHabit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	habitID := c.Query("habit_id")
	if habitID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habit_id is required"})
		return
	}

	to := c.DefaultQuery("to", calendar.Today())
	from := c.DefaultQuery("from", calendar.AddDays(to, -30))

	list, err := h.svc.ListByHabit(c.Request.Context(), habitID, userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	habitID := c.Query("habit_id")
	date := c.Query("date")
	if habitID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habit_id and date are required"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), habitID, userID, date); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
