package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neu-portal/student-records-api/internal/service"
	"github.com/neu-portal/student-records-api/pkg/response"
)

// GradeHandler exposes GPA and grade listing endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// GpaSummary godoc
// @Summary GPA and credit totals for the authenticated student
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/gpa [get]
func (h *GradeHandler) GpaSummary(c *gin.Context) {
	summary, err := h.grades.GpaSummary(c.Request.Context(), studentIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// GradesSummary godoc
// @Summary Current and completed grades with GPA summary
// @Tags Grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/grades-summary [get]
func (h *GradeHandler) GradesSummary(c *gin.Context) {
	summary, err := h.grades.GradesSummary(c.Request.Context(), studentIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Transcript godoc
// @Summary Export the academic transcript
// @Tags Grades
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(pdf)
// @Success 200 {file} binary
// @Router /students/transcript [get]
func (h *GradeHandler) Transcript(c *gin.Context) {
	format := c.DefaultQuery("format", service.TranscriptFormatPDF)
	doc, err := h.grades.Transcript(c.Request.Context(), studentIDFromContext(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
