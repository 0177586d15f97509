package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neu-portal/student-records-api/internal/models"
	"github.com/neu-portal/student-records-api/internal/service"
	appErrors "github.com/neu-portal/student-records-api/pkg/errors"
	"github.com/neu-portal/student-records-api/pkg/response"
)

// AuthHandler exposes signup, login and token verification endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	students *service.StudentService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService, students *service.StudentService) *AuthHandler {
	return &AuthHandler{auth: auth, students: students}
}

// Signup godoc
// @Summary Register a student
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.SignupRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Router /students/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	res, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Login godoc
// @Summary Authenticate a student
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /students/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Verify godoc
// @Summary Verify the current token and return the student
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	profile, err := h.students.Profile(c.Request.Context(), studentIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Logout godoc
// @Summary Log out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client drops its copy.
	response.JSON(c, http.StatusOK, gin.H{"message": "logged out successfully"}, nil)
}
