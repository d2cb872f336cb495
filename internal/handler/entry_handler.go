package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mapmysteps/location-backend-go/internal/middleware"
	"github.com/mapmysteps/location-backend-go/internal/models"
	"github.com/mapmysteps/location-backend-go/internal/service"
	"github.com/mapmysteps/location-backend-go/pkg/response"
)

// EntryHandler handles HTTP requests for the location log
type EntryHandler struct {
	logService    *service.LogService
	viewerService *service.ViewerService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(logService *service.LogService, viewerService *service.ViewerService) *EntryHandler {
	return &EntryHandler{
		logService:    logService,
		viewerService: viewerService,
	}
}

// ConsiderFix handles POST /api/v1/locations/fixes
func (h *EntryHandler) ConsiderFix(c *gin.Context) {
	var fix models.Fix
	if err := c.ShouldBindJSON(&fix); err != nil {
		response.BadRequest(c, "Invalid fix payload")
		return
	}

	outcome, err := h.logService.ConsiderFix(middleware.UserID(c), fix)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, outcome)
}

// GetDays handles GET /api/v1/locations/days
func (h *EntryHandler) GetDays(c *gin.Context) {
	days, err := h.viewerService.Days(middleware.UserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, days)
}

// GetDayEntries handles GET /api/v1/locations/days/:date/entries
func (h *EntryHandler) GetDayEntries(c *gin.Context) {
	entries, err := h.viewerService.DayEntries(middleware.UserID(c), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, entries)
}

// GetLatest handles GET /api/v1/locations/latest
func (h *EntryHandler) GetLatest(c *gin.Context) {
	entry, err := h.viewerService.Latest(middleware.UserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if entry == nil {
		response.NotFound(c, "No entries logged yet")
		return
	}

	response.Success(c, entry)
}

// writeServiceError maps service failures onto HTTP status codes
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidFix), errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
