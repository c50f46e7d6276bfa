// Package event carries reservation lifecycle events from the engine to
// registered listeners. The engine knows it emits; it does not know who
// listens or what they do with it.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	ReservaCreada     Type = "reserva_creada"
	ReservaModificada Type = "reserva_modificada"
	ReservaEliminada  Type = "reserva_eliminada"
)

// ReservaEvent describes one mutation of a reservation.
type ReservaEvent struct {
	Type            Type
	ReservaID       uuid.UUID
	MedicoID        uuid.UUID
	PacienteNombre  string
	FechaDisponible time.Time
	OccurredAt      time.Time
}

// Listener consumes reservation events. Handlers must be best-effort:
// a listener failure never fails the mutation that emitted the event.
type Listener interface {
	HandleReservaEvent(ctx context.Context, ev ReservaEvent)
}

// Emitter fans events out to registered listeners, synchronously and in
// registration order.
type Emitter struct {
	listeners []Listener
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Register(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Emitter) Emit(ctx context.Context, ev ReservaEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	for _, l := range e.listeners {
		l.HandleReservaEvent(ctx, ev)
	}
}
