package onboarding

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	booker  Booker
}

func NewHandler(service *Service, booker Booker) *Handler {
	return &Handler{service: service, booker: booker}
}

// --------------------------------------------------
// First-week submission (pre-account, no auth)
// --------------------------------------------------
func (h *Handler) FirstWeek(c *gin.Context) {
	var in FirstWeekInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.service.SubmitFirstWeek(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// --------------------------------------------------
// Client type
// --------------------------------------------------
func (h *Handler) SetClientType(c *gin.Context) {
	var in struct {
		DraftID    string `json:"draft_id" binding:"required"`
		ClientType string `json:"client_type" binding:"required"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.service.SetClientType(c.Request.Context(), in.DraftID, in.ClientType)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft_id": in.DraftID, "client_type": in.ClientType})
}

// --------------------------------------------------
// Rules / explanation screen
// --------------------------------------------------
func (h *Handler) Explain(c *gin.Context) {
	draftID := c.Query("draft_id")
	if draftID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft_id is required"})
		return
	}

	explanation, err := h.service.Explain(c.Request.Context(), draftID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, explanation)
}

// --------------------------------------------------
// IBAN (subscribers only)
// --------------------------------------------------
func (h *Handler) SetIBAN(c *gin.Context) {
	var in struct {
		DraftID string `json:"draft_id" binding:"required"`
		IBAN    string `json:"iban" binding:"required"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	normalized, err := h.service.SetIBAN(c.Request.Context(), in.DraftID, in.IBAN)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft_id": in.DraftID, "iban": normalized})
}

// --------------------------------------------------
// Subscriber week synthesis (auth required)
// --------------------------------------------------
func (h *Handler) EnsureWeek(c *gin.Context) {
	userID := c.GetString("userID")

	var in struct {
		DraftID   string `json:"draft_id" binding:"required"`
		WeekStart string `json:"week_start" binding:"required"`
	}
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	weekStart, err := time.ParseInLocation("2006-01-02", in.WeekStart, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
		return
	}

	created, err := h.service.EnsureWeek(c.Request.Context(), h.booker, userID, in.DraftID, weekStart)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "onboarding draft not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft_id":         in.DraftID,
		"week_start":       in.WeekStart,
		"created_bookings": created,
	})
}
