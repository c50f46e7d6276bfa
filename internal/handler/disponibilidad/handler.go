package disponibilidad

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/disponibilidad"
	"github.com/clinicaustral/clinica-api/internal/service/medico"
)

// Handler exposes the medico-facing slot endpoints. The caller's medico
// record is resolved from the authenticated usuario on every request.
type Handler struct {
	service   *disponibilidad.Service
	medicoSvc *medico.Service
}

func NewHandler(service *disponibilidad.Service, medicoSvc *medico.Service) *Handler {
	return &Handler{service: service, medicoSvc: medicoSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	disponibilidades := rg.Group("/disponibilidades")
	{
		disponibilidades.POST("", h.CreateDisponibilidad)
		disponibilidades.GET("", h.ListDisponibilidades)
		disponibilidades.DELETE("/:id", h.DeleteDisponibilidad)
	}
}

func (h *Handler) callerMedicoID(c *gin.Context) (uuid.UUID, bool) {
	usuarioID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no autenticado"))
		return uuid.Nil, false
	}

	med, err := h.medicoSvc.GetByUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		handler.Error(c, err)
		return uuid.Nil, false
	}
	return med.ID, true
}

func (h *Handler) CreateDisponibilidad(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	var req model.CreateDisponibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	disp, err := h.service.Publish(c.Request.Context(), medicoID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(disp))
}

func (h *Handler) ListDisponibilidades(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	disponibilidades, err := h.service.ListOwn(c.Request.Context(), medicoID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(disponibilidades))
}

func (h *Handler) DeleteDisponibilidad(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de disponibilidad inválido"))
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), id, medicoID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}
