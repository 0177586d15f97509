package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neu-portal/student-records-api/internal/service"
	"github.com/neu-portal/student-records-api/pkg/response"
)

// AnnouncementHandler serves announcements visible to the caller.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementHandler constructs AnnouncementHandler.
func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List godoc
// @Summary Announcements for the student's department plus campus-wide ones
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	items, err := h.announcements.ListVisible(c.Request.Context(), studentIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
