package controllers

import (
	"net/http"
	"strconv"
	"time"

	"boardroom-backend/services"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidQuery", "message": key + " must be a positive integer"},
		})
		return 0, false
	}
	return uint(v), true
}

// GetAvailableStarts lists free start times for a boardroom on a date.
// GET /api/availability/starts?boardroom_id=1&date=2026-09-01[&granularity=30]
func (ctrl *AvailabilityController) GetAvailableStarts(c *gin.Context) {
	roomID, ok := queryUint(c, "boardroom_id")
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidQuery", "message": "date must be YYYY-MM-DD"},
		})
		return
	}
	granularity, _ := strconv.Atoi(c.DefaultQuery("granularity", "0"))

	starts, err := ctrl.AvailabilitySvc.ListAvailableStarts(roomID, date, granularity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]string, 0, len(starts))
	for _, t := range starts {
		out = append(out, t.Format("15:04"))
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "starts": out})
}

// GetAllowedDurations lists legal durations (minutes, ascending) for a start.
// GET /api/availability/durations?boardroom_id=1&date=2026-09-01&start=10:30
func (ctrl *AvailabilityController) GetAllowedDurations(c *gin.Context) {
	roomID, ok := queryUint(c, "boardroom_id")
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidQuery", "message": "date must be YYYY-MM-DD"},
		})
		return
	}
	startTOD, err := time.Parse("15:04", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidQuery", "message": "start must be HH:MM"},
		})
		return
	}
	start := time.Date(date.Year(), date.Month(), date.Day(),
		startTOD.Hour(), startTOD.Minute(), 0, 0, date.Location())
	granularity, _ := strconv.Atoi(c.DefaultQuery("granularity", "0"))

	durations, err := ctrl.AvailabilitySvc.AllowedDurations(roomID, start, granularity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": c.Query("start"), "durations_minutes": durations})
}
