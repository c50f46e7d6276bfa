package especialidad

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/especialidad"
)

type Handler struct {
	service *especialidad.Service
}

func NewHandler(service *especialidad.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin-only write endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/especialidades", h.CreateEspecialidad)
}

// RegisterPublicRoutes mounts the read endpoints used by booking
// front-ends.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	especialidades := rg.Group("/especialidades")
	{
		especialidades.GET("", h.ListEspecialidades)
		especialidades.GET("/:id", h.GetEspecialidad)
	}
}

func (h *Handler) CreateEspecialidad(c *gin.Context) {
	var req model.CreateEspecialidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	esp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(esp))
}

func (h *Handler) GetEspecialidad(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de especialidad inválido"))
		return
	}

	esp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(esp))
}

func (h *Handler) ListEspecialidades(c *gin.Context) {
	especialidades, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(especialidades))
}
