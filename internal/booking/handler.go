package booking

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

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidTimeBlock),
		errors.Is(err, ErrInvalidMeals),
		errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrInvalidDishChoice),
		errors.Is(err, ErrCutoffPassed),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrNotActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// --------------------------------------------------
// Public: slot catalog
// --------------------------------------------------
func (h *Handler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Slots())
}

// --------------------------------------------------
// Create booking
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var in Input
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// --------------------------------------------------
// List my bookings
// --------------------------------------------------
func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// --------------------------------------------------
// Update booking
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var in Input
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	b, err := h.service.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// --------------------------------------------------
// Cancel booking
// --------------------------------------------------
func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetString("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Booking cancelled"})
}

// --------------------------------------------------
// Week pricing preview
// --------------------------------------------------
func (h *Handler) WeekPricing(c *gin.Context) {
	userID := c.GetString("userID")

	raw := c.Query("week_for")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_for is required"})
		return
	}
	weekFor, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_for must be YYYY-MM-DD"})
		return
	}

	quote, err := h.service.WeekQuote(c.Request.Context(), userID, weekFor)
	if err != nil {
		// Tier miss is an internal invariant violation, never a client fault.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}
