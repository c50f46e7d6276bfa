package medico

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/medico"
)

type Handler struct {
	service *medico.Service
}

func NewHandler(service *medico.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin-only medico management endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	medicos := rg.Group("/medicos")
	{
		medicos.POST("", h.CreateMedico)
		medicos.GET("", h.ListMedicos)
		medicos.GET("/:id", h.GetMedico)
		medicos.PUT("/:id", h.UpdateMedico)
		medicos.DELETE("/:id", h.DeleteMedico)
	}
}

func (h *Handler) CreateMedico(c *gin.Context) {
	var req model.CreateMedicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(med))
}

func (h *Handler) GetMedico(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de médico inválido"))
		return
	}

	med, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(med))
}

func (h *Handler) ListMedicos(c *gin.Context) {
	medicos, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(medicos))
}

func (h *Handler) UpdateMedico(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de médico inválido"))
		return
	}

	var req model.UpdateMedicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(med))
}

func (h *Handler) DeleteMedico(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de médico inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}
