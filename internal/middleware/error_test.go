package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/clinicaustral/clinica-api/internal/handler"
	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"
)

func errorRequest(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/recurso", h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerNoDuplicaRespuestaDelHandler(t *testing.T) {
	w := errorRequest(t, func(c *gin.Context) {
		handler.Error(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"error interno del servidor"}`, w.Body.String())
}

func TestErrorHandlerEnmascaraErroresInternos(t *testing.T) {
	w := errorRequest(t, func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error interno del servidor")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorHandlerConservaErroresDeAplicacion(t *testing.T) {
	w := errorRequest(t, func(c *gin.Context) {
		_ = c.Error(apperrors.Conflict("la hora ya se encuentra ocupada", nil))
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "la hora ya se encuentra ocupada")
}
