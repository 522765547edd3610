package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ritmo-app/ritmo-engine/internal/adapters/handler/http/middleware"
	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
	"github.com/ritmo-app/ritmo-engine/internal/core/services"
)

type SummaryHandler struct {
	svc *services.SummaryService
}

func NewSummaryHandler(svc *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/summary/:date", h.DaySummary)
	router.GET("/analytics", h.Series)
	router.GET("/streak", h.Streak)
	router.GET("/habits/:id/streak", h.HabitStreak)
}

func (h *SummaryHandler) DaySummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date := c.Param("date")
	if _, ok := calendar.Parse(date); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	summary, err := h.svc.DaySummary(c.Request.Context(), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SummaryHandler) Series(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	r := metrics.Range(c.DefaultQuery("range", string(metrics.RangeWeek)))
	if !metrics.ValidRange(r) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range (day, week, month, 6month, year)"})
		return
	}

	end := c.DefaultQuery("end", calendar.Today())
	if _, ok := calendar.Parse(end); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date format, expected YYYY-MM-DD"})
		return
	}

	points, err := h.svc.Series(c.Request.Context(), userID, r, end, c.Query("habit_id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": r, "end": end, "points": points})
}

func (h *SummaryHandler) Streak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.svc.Streak(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *SummaryHandler) HabitStreak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.svc.HabitStreak(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit_id": c.Param("id"), "streak": streak})
}
