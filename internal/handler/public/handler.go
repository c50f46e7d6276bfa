package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/service/disponibilidad"
	"github.com/clinicaustral/clinica-api/internal/service/medico"
)

// Handler serves the unauthenticated lookup endpoints used by booking
// front-ends: medicos by especialidad and the free slots of a medico.
type Handler struct {
	medicoSvc         *medico.Service
	disponibilidadSvc *disponibilidad.Service
}

func NewHandler(medicoSvc *medico.Service, disponibilidadSvc *disponibilidad.Service) *Handler {
	return &Handler{medicoSvc: medicoSvc, disponibilidadSvc: disponibilidadSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/medicos", h.ListMedicos)
	rg.GET("/disponibilidades", h.ListDisponibilidadesLibres)
}

// ListMedicos lists all medicos, or only those of one especialidad when
// especialidad_id is given.
func (h *Handler) ListMedicos(c *gin.Context) {
	if raw := c.Query("especialidad_id"); raw != "" {
		especialidadID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de especialidad inválido"))
			return
		}

		medicos, err := h.medicoSvc.ListByEspecialidad(c.Request.Context(), especialidadID)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(medicos))
		return
	}

	medicos, err := h.medicoSvc.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(medicos))
}

// ListDisponibilidadesLibres returns the free upcoming slots of one
// medico as id plus formatted fecha_hora. The medico_id parameter is
// mandatory.
func (h *Handler) ListDisponibilidadesLibres(c *gin.Context) {
	raw := c.Query("medico_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("el parámetro medico_id es obligatorio"))
		return
	}

	medicoID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de médico inválido"))
		return
	}

	libres, err := h.disponibilidadSvc.ListLibres(c.Request.Context(), medicoID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(libres))
}
