package model

import (
	"time"

	"github.com/google/uuid"
)

// Disponibilidad is a bookable time slot owned by one medico. Ocupada is
// true iff exactly one live reserva references the slot; the flag only
// flips inside the reservation engine's transactions.
type Disponibilidad struct {
	Base
	MedicoID        uuid.UUID `json:"medico_id" db:"medico_id"`
	FechaDisponible time.Time `json:"fecha_disponible" db:"fecha_disponible"`
	Ocupada         bool      `json:"ocupada" db:"ocupada"`
}

type CreateDisponibilidadRequest struct {
	FechaDisponible time.Time `json:"fecha_disponible" binding:"required"`
}

// DisponibilidadLibre is the public booking-form projection of a free slot.
type DisponibilidadLibre struct {
	ID        uuid.UUID `json:"id"`
	FechaHora string    `json:"fecha_hora"`
}
