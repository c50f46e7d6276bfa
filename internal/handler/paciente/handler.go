package paciente

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/paciente"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

type Handler struct {
	service *paciente.Service
}

func NewHandler(service *paciente.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the recepcionista-facing paciente endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pacientes := rg.Group("/pacientes")
	{
		pacientes.POST("", h.CreatePaciente)
		pacientes.GET("", h.ListPacientes)
		pacientes.GET("/:id", h.GetPaciente)
		pacientes.PUT("/:id", h.UpdatePaciente)
		pacientes.DELETE("/:id", h.DeletePaciente)
	}
	rg.GET("/validar_rut", h.ValidarRut)
}

func (h *Handler) CreatePaciente(c *gin.Context) {
	var req model.CreatePacienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	pac, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(pac))
}

func (h *Handler) GetPaciente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de paciente inválido"))
		return
	}

	pac, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(pac))
}

// ListPacientes supports an optional rut filter plus pagination.
func (h *Handler) ListPacientes(c *gin.Context) {
	var filter model.PacienteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	page, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(page))
}

func (h *Handler) UpdatePaciente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de paciente inválido"))
		return
	}

	var req model.UpdatePacienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	pac, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(pac))
}

func (h *Handler) DeletePaciente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de paciente inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

// ValidarRut looks up a paciente by RUT and answers with name and age,
// so the reception desk can confirm identity while taking a booking.
func (h *Handler) ValidarRut(c *gin.Context) {
	pacienteRut := c.Query("rut")
	if pacienteRut == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("el parámetro rut es obligatorio"))
		return
	}
	if !rut.Valid(rut.Normalize(pacienteRut)) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("el RUT ingresado no es válido"))
		return
	}

	resp, err := h.service.ValidarRut(c.Request.Context(), pacienteRut)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}
