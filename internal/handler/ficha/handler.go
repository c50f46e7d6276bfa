package ficha

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/service/ficha"
	"github.com/clinicaustral/clinica-api/internal/service/medico"
)

// Handler exposes the medico-facing medical record endpoints. Writes
// are always attributed to the authenticated medico.
type Handler struct {
	service   *ficha.Service
	medicoSvc *medico.Service
}

func NewHandler(service *ficha.Service, medicoSvc *medico.Service) *Handler {
	return &Handler{service: service, medicoSvc: medicoSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fichas := rg.Group("/fichas")
	{
		fichas.POST("", h.CreateFicha)
		fichas.GET("", h.ListFichas)
		fichas.GET("/:id", h.GetFicha)
		fichas.PUT("/:id", h.UpdateFicha)
		fichas.DELETE("/:id", h.DeleteFicha)
	}
	rg.GET("/historial/:rut", h.ListFichasPaciente)
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

func (h *Handler) CreateFicha(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	var req model.CreateFichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	f, err := h.service.Create(c.Request.Context(), medicoID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(f))
}

func (h *Handler) GetFicha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de ficha inválido"))
		return
	}

	f, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

// ListFichas supports optional rut and fecha (YYYY-MM-DD) filters plus
// pagination.
func (h *Handler) ListFichas(c *gin.Context) {
	var filter model.FichaFilter
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

func (h *Handler) ListFichasPaciente(c *gin.Context) {
	fichas, err := h.service.ListByPaciente(c.Request.Context(), c.Param("rut"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(fichas))
}

func (h *Handler) UpdateFicha(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de ficha inválido"))
		return
	}

	var req model.UpdateFichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	f, err := h.service.Update(c.Request.Context(), id, medicoID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

func (h *Handler) DeleteFicha(c *gin.Context) {
	medicoID, ok := h.callerMedicoID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("ID de ficha inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, medicoID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}
