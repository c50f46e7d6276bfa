package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/handler"
	"github.com/clinicaustral/clinica-api/internal/service/dashboard"
	"github.com/clinicaustral/clinica-api/internal/service/medico"
	"github.com/clinicaustral/clinica-api/internal/service/notification"
	"github.com/clinicaustral/clinica-api/internal/service/reserva"
)

type Handler struct {
	service         *dashboard.Service
	medicoSvc       *medico.Service
	reservaSvc      *reserva.Service
	notificationSvc *notification.Service
}

func NewHandler(
	service *dashboard.Service,
	medicoSvc *medico.Service,
	reservaSvc *reserva.Service,
	notificationSvc *notification.Service,
) *Handler {
	return &Handler{
		service:         service,
		medicoSvc:       medicoSvc,
		reservaSvc:      reservaSvc,
		notificationSvc: notificationSvc,
	}
}

// RegisterAdminRoutes mounts the admin landing-page counters.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/admin", h.AdminDashboard)
}

// RegisterMedicoRoutes mounts the medico agenda view.
func (h *Handler) RegisterMedicoRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/medico", h.MedicoAgenda)
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.service.AdminStats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

// MedicoAgenda returns the caller's remaining reservas for today along
// with any pending notifications about them. Notifications expire on
// their own shortly after the change that produced them.
func (h *Handler) MedicoAgenda(c *gin.Context) {
	usuarioID, ok := handler.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no autenticado"))
		return
	}

	med, err := h.medicoSvc.GetByUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	agenda, err := h.reservaSvc.AgendaHoy(c.Request.Context(), med.ID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(agenda))
	for _, r := range agenda {
		ids = append(ids, r.ID)
	}
	notificaciones := h.notificationSvc.Pendientes(c.Request.Context(), ids)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"agenda":         agenda,
		"notificaciones": notificaciones,
	}))
}
