package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neu-portal/student-records-api/internal/models"
	"github.com/neu-portal/student-records-api/internal/service"
	"github.com/neu-portal/student-records-api/pkg/config"
)

type noAccounts struct{}

func (noAccounts) FindByEmail(context.Context, string) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (noAccounts) FindProfileByID(context.Context, string) (*models.StudentProfile, error) {
	return nil, sql.ErrNoRows
}

func (noAccounts) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (noAccounts) Create(context.Context, *models.Student) error { return nil }

type noDepartments struct{}

func (noDepartments) Exists(context.Context, string) (bool, error) { return false, nil }

func newJWTRouter(t *testing.T, authSvc *service.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		value, _ := c.Get(ContextStudentKey)
		claims, ok := value.(*models.JWTClaims)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"student_id": claims.StudentID})
	})
	return r
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	authSvc := service.NewAuthService(noAccounts{}, noDepartments{}, config.JWTConfig{Secret: "secret", Expiration: time.Hour}, nil, nil)
	router := newJWTRouter(t, authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no token provided")
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	authSvc := service.NewAuthService(noAccounts{}, noDepartments{}, config.JWTConfig{Secret: "secret", Expiration: time.Hour}, nil, nil)
	router := newJWTRouter(t, authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header")
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	authSvc := service.NewAuthService(noAccounts{}, noDepartments{}, config.JWTConfig{Secret: "secret", Expiration: time.Hour}, nil, nil)
	router := newJWTRouter(t, authSvc)

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		StudentID: "stu-1",
		Email:     "ada@example.edu",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stu-1")
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	authSvc := service.NewAuthService(noAccounts{}, noDepartments{}, config.JWTConfig{Secret: "secret", Expiration: time.Hour}, nil, nil)
	router := newJWTRouter(t, authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
