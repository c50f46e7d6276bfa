package reserva

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/reserva"
)

type Handler struct {
	service *reserva.Service
}

func NewHandler(service *reserva.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the recepcionista-facing booking endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	reservas := rg.Group("/reservas")
	{
		reservas.POST("", h.CreateReserva)
		reservas.GET("", h.ListReservas)
		reservas.GET("/:id", h.GetReserva)
		reservas.PUT("/:id", h.UpdateReserva)
		reservas.DELETE("/:id", h.DeleteReserva)
	}
}

func (h *Handler) CreateReserva(c *gin.Context) {
	var req model.CreateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(res))
}

func (h *Handler) GetReserva(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de reserva inválido"))
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(res))
}

// ListReservas supports an optional fecha_inicio/fecha_fin range plus
// pagination. Both bounds must be supplied together.
func (h *Handler) ListReservas(c *gin.Context) {
	var filter model.ReservaFilter
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

func (h *Handler) UpdateReserva(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de reserva inválido"))
		return
	}

	var req model.UpdateReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	res, err := h.service.Reschedule(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(res))
}

func (h *Handler) DeleteReserva(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de reserva inválido"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}
