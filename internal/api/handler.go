package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kurihiro0119/github-wrapped/internal/errors"
	"github.com/kurihiro0119/github-wrapped/internal/wrapped"
)

// GitHub usernames: alphanumeric and hyphens, no leading/trailing hyphen,
// at most 39 characters
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

const minWrappedYear = 2008

// Handler handles API requests
type Handler struct {
	service wrapped.Service
}

// NewHandler creates a new API handler
func NewHandler(service wrapped.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetWrapped returns the wrapped summary for a user and year
// GET /api/v1/wrapped?username=<username>&year=<year>
func (h *Handler) GetWrapped(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" || len(username) > 39 || !usernameRe.MatchString(username) {
		respondError(c, apperrors.NewBadRequestError("username is required and must be a valid GitHub username"))
		return
	}

	currentYear := time.Now().Year()
	year := currentYear - 1
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			respondError(c, apperrors.NewBadRequestError("year must be an integer"))
			return
		}
		year = parsed
	}
	if year < minWrappedYear || year > currentYear {
		respondError(c, apperrors.NewBadRequestError(
			"year must be between "+strconv.Itoa(minWrappedYear)+" and "+strconv.Itoa(currentYear)))
		return
	}

	result, err := h.service.GetWrapped(c.Request.Context(), username, year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result,
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeUpstreamUnavailable, apperrors.ErrCodeIncompleteData:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "INTERNAL_ERROR",
			"message": err.Error(),
		},
	})
}
