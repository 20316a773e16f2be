package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tanjilh136/mealprep/internal/auth"
)

type Handler struct {
	service *Service
	users   *auth.Service
}

func NewHandler(service *Service, users *auth.Service) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) ListBookings(c *gin.Context) {
	list, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// WeekSummary serves GET /admin/summary?week_for=YYYY-MM-DD (defaults to
// the current service week).
func (h *Handler) WeekSummary(c *gin.Context) {
	weekFor := time.Now().UTC()
	if raw := c.Query("week_for"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "week_for must be YYYY-MM-DD"})
			return
		}
		weekFor = parsed
	}

	summary, err := h.service.WeekSummary(c.Request.Context(), weekFor)
	if err != nil {
		if errors.Is(err, ErrEmptyWeek) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list users"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, u := range list {
		out = append(out, gin.H{
			"id":          u.ID,
			"name":        u.Name,
			"email":       u.Email,
			"phone":       u.Phone,
			"role":        u.Role,
			"client_type": u.ClientType,
			"is_active":   u.IsActive,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *Handler) SetUserRole(c *gin.Context) {
	userID := c.Param("id")

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	err := h.users.SetRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}
