package recepcionista

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/recepcionista"
)

type Handler struct {
	service *recepcionista.Service
}

func NewHandler(service *recepcionista.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin-only recepcionista management
// endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	recepcionistas := rg.Group("/recepcionistas")
	{
		recepcionistas.POST("", h.CreateRecepcionista)
		recepcionistas.GET("", h.ListRecepcionistas)
		recepcionistas.GET("/:id", h.GetRecepcionista)
		recepcionistas.PUT("/:id", h.UpdateRecepcionista)
		recepcionistas.DELETE("/:id", h.DeleteRecepcionista)
	}
}

func (h *Handler) CreateRecepcionista(c *gin.Context) {
	var req model.CreateRecepcionistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) GetRecepcionista(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de recepcionista inválido"))
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) ListRecepcionistas(c *gin.Context) {
	recepcionistas, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(recepcionistas))
}

func (h *Handler) UpdateRecepcionista(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de recepcionista inválido"))
		return
	}

	var req model.UpdateRecepcionistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}

func (h *Handler) DeleteRecepcionista(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de recepcionista inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}
