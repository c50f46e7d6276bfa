package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clinicaustral/clinica-api/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func identity(role model.Role, superuser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, uuid.New())
		c.Set(ContextRut, "12345678-9")
		c.Set(ContextRole, role)
		c.Set(ContextSuperuser, superuser)
		c.Next()
	}
}

func roleRequest(t *testing.T, gate gin.HandlerFunc, caller gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	handlers := []gin.HandlerFunc{}
	if caller != nil {
		handlers = append(handlers, caller)
	}
	handlers = append(handlers, gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	r.GET("/recurso", handlers...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRoleMismoRol(t *testing.T) {
	m := NewAuthMiddleware(nil)
	w := roleRequest(t, m.RequireRole(model.RoleMedico), identity(model.RoleMedico, false))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleOtroRol(t *testing.T) {
	m := NewAuthMiddleware(nil)
	w := roleRequest(t, m.RequireRole(model.RoleAdmin), identity(model.RoleMedico, false))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleSuperuser(t *testing.T) {
	m := NewAuthMiddleware(nil)
	w := roleRequest(t, m.RequireRole(model.RoleAdmin), identity(model.RoleMedico, true))
	assert.Equal(t, http.StatusOK, w.Code, "superuser clears every role gate")
}

func TestRequireRoleSinAutenticar(t *testing.T) {
	m := NewAuthMiddleware(nil)
	w := roleRequest(t, m.RequireRole(model.RoleAdmin), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSinHeader(t *testing.T) {
	m := NewAuthMiddleware(nil)
	r := gin.New()
	r.GET("/recurso", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateFormatoInvalido(t *testing.T) {
	m := NewAuthMiddleware(nil)
	r := gin.New()
	r.GET("/recurso", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
