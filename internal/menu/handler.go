package menu

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

type AdminHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// --------------------------------------------------
// Public: week menu (no auth)
// --------------------------------------------------
func (h *Handler) PublicWeek(c *gin.Context) {
	weekFor := time.Now().UTC()
	if raw := c.Query("week_for"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_for must be YYYY-MM-DD"})
			return
		}
		weekFor = parsed
	}

	week, err := h.service.PublicWeek(c.Request.Context(), weekFor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, week)
}

// --------------------------------------------------
// Admin: rotation management
// --------------------------------------------------
func (h *AdminHandler) UpsertDay(c *gin.Context) {
	var in UpsertInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	day, err := h.service.UpsertDay(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AdminHandler) GetDay(c *gin.Context) {
	dayNumber, err := strconv.Atoi(c.Param("day_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_number must be an integer"})
		return
	}

	day, err := h.service.GetDay(c.Request.Context(), dayNumber)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found for that day_number"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AdminHandler) List(c *gin.Context) {
	days, err := h.service.ListRotation(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}
