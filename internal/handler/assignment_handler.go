package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neu-portal/student-records-api/internal/service"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
	"github.com/neu-portal/student-records-api/pkg/response"
)

// AssignmentHandler exposes assignment listing and submission.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentHandler constructs AssignmentHandler.
func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary Assignments across the student's enrolled courses
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.assignments.List(c.Request.Context(), studentIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Submit godoc
// @Summary Submit an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param payload body service.SubmitAssignmentRequest true "Submission"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/assignments/{id}/submit [put]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req service.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.assignments.Submit(c.Request.Context(), studentIDFromContext(c), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "assignment submitted"}, nil)
}
