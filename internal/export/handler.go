package export

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) stream(c *gin.Context, file *File, err error) {
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not build export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, "text/csv", file.Content)
}

// Today serves GET /export/today?day=YYYY-MM-DD (kitchen role).
func (h *Handler) Today(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "day must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	file, err := h.service.Today(c.Request.Context(), day)
	h.stream(c, file, err)
}

// Week serves GET /export/week?week_for=YYYY-MM-DD (admin role).
func (h *Handler) Week(c *gin.Context) {
	weekFor := time.Now().UTC()
	if raw := c.Query("week_for"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "week_for must be YYYY-MM-DD"})
			return
		}
		weekFor = parsed
	}

	file, err := h.service.Week(c.Request.Context(), weekFor)
	h.stream(c, file, err)
}
