package kitchen

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tanjilh136/mealprep/internal/calendar"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Day serves GET /kitchen/day?day=YYYY-MM-DD (defaults to today).
func (h *Handler) Day(c *gin.Context) {
	day := calendar.Date(time.Now().UTC())
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	lines, err := h.service.DayView(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, ErrNoBookings) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load kitchen day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     day.Format("2006-01-02"),
		"bookings": lines,
	})
}
