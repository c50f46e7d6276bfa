package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	authsvc "github.com/clinicaustral/clinica-api/internal/service/auth"
	"github.com/clinicaustral/clinica-api/pkg/auth"
)

const (
	ContextUserID    = "usuarioID"
	ContextRut       = "rut"
	ContextRole      = "role"
	ContextSuperuser = "superuser"
)

type AuthMiddleware struct {
	authService *authsvc.Service
}

func NewAuthMiddleware(authService *authsvc.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and sets the caller's identity
// in the request context. The token is re-checked against the account
// table so a deactivated usuario loses access before the token expires.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("falta el encabezado de autorización"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("formato de autorización inválido"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("token inválido"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRut, claims.Rut)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextSuperuser, claims.Superuser)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Superusers clear every
// gate.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no autenticado"))
			c.Abort()
			return
		}

		if !claims.Superuser && claims.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("no tiene permisos para acceder a este recurso"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClaimsFrom rebuilds the caller's claims from the gin context. It
// returns false when Authenticate has not run on this request.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return nil, false
	}

	claims := &auth.Claims{UserID: userID}
	if r, ok := c.Get(ContextRut); ok {
		claims.Rut, _ = r.(string)
	}
	if r, ok := c.Get(ContextRole); ok {
		claims.Role, _ = r.(model.Role)
	}
	if s, ok := c.Get(ContextSuperuser); ok {
		claims.Superuser, _ = s.(bool)
	}
	return claims, true
}
