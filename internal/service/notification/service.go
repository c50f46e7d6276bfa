package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicaustral/clinica-api/pkg/event"
)

const fechaFormato = "02/01/2006 15:04"

// Notificacion is one pending dashboard message. Tipo distinguishes
// create/modify notices from deletions so the frontend can color them.
type Notificacion struct {
	Mensaje string `json:"mensaje"`
	Tipo    string `json:"tipo"`
}

// Service renders reservation events into Spanish messages and parks
// them in the expiring store for the medico dashboard to pick up.
type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl}
}

func claveReserva(id uuid.UUID) string {
	return fmt.Sprintf("notificacion_reserva_%s", id)
}

func claveReservaEliminada(id uuid.UUID) string {
	return fmt.Sprintf("notificacion_reserva_eliminada_%s", id)
}

// HandleReservaEvent implements event.Listener. Write failures are
// logged and swallowed: the channel is best-effort by contract.
func (s *Service) HandleReservaEvent(ctx context.Context, ev event.ReservaEvent) {
	var key, mensaje string

	fecha := ev.FechaDisponible.Format(fechaFormato)
	switch ev.Type {
	case event.ReservaCreada:
		key = claveReserva(ev.ReservaID)
		mensaje = fmt.Sprintf("Se ha creado una nueva reserva para %s el %s.", ev.PacienteNombre, fecha)
	case event.ReservaModificada:
		key = claveReserva(ev.ReservaID)
		mensaje = fmt.Sprintf("Se ha modificado la reserva de %s. La nueva fecha es %s.", ev.PacienteNombre, fecha)
	case event.ReservaEliminada:
		key = claveReservaEliminada(ev.ReservaID)
		mensaje = fmt.Sprintf("Se ha eliminado la reserva de %s para el %s.", ev.PacienteNombre, fecha)
	default:
		return
	}

	if err := s.store.Put(ctx, key, mensaje, s.ttl); err != nil {
		log.Warn().Err(err).Str("reserva_id", ev.ReservaID.String()).Msg("failed to store notification")
	}
}

// Pendientes returns the messages still alive for the given
// reservations. Reads are not acknowledgements; a message stays visible
// until its TTL runs out.
func (s *Service) Pendientes(ctx context.Context, reservaIDs []uuid.UUID) []Notificacion {
	var notificaciones []Notificacion
	for _, id := range reservaIDs {
		if msg, ok := s.store.Get(ctx, claveReserva(id)); ok {
			notificaciones = append(notificaciones, Notificacion{Mensaje: msg, Tipo: "success"})
		}
		if msg, ok := s.store.Get(ctx, claveReservaEliminada(id)); ok {
			notificaciones = append(notificaciones, Notificacion{Mensaje: msg, Tipo: "error"})
		}
	}
	return notificaciones
}
