package model

import (
	"time"

	"github.com/google/uuid"
)

// Reserva binds a paciente, a medico, a especialidad and exactly one
// disponibilidad. The especialidad is denormalized on purpose: it records
// what was booked even if the medico later changes specialty.
type Reserva struct {
	Base
	PacienteID       uuid.UUID `json:"paciente_id" db:"paciente_id"`
	MedicoID         uuid.UUID `json:"medico_id" db:"medico_id"`
	EspecialidadID   uuid.UUID `json:"especialidad_id" db:"especialidad_id"`
	DisponibilidadID uuid.UUID `json:"disponibilidad_id" db:"disponibilidad_id"`
	Motivo           string    `json:"motivo" db:"motivo"`

	// Joined columns, populated on reads.
	PacienteNombre  string     `json:"paciente_nombre,omitempty" db:"paciente_nombre"`
	PacienteRut     string     `json:"paciente_rut,omitempty" db:"paciente_rut"`
	FechaDisponible *time.Time `json:"fecha_disponible,omitempty" db:"fecha_disponible"`
}

type CreateReservaRequest struct {
	RutPaciente      string    `json:"rut_paciente" binding:"required,rut"`
	MedicoID         uuid.UUID `json:"medico_id" binding:"required"`
	EspecialidadID   uuid.UUID `json:"especialidad_id" binding:"required"`
	DisponibilidadID uuid.UUID `json:"disponibilidad_id" binding:"required"`
	Motivo           string    `json:"motivo"`
}

// UpdateReservaRequest reschedules a reserva onto a new slot, optionally
// moving it to another medico or rewriting the motivo.
type UpdateReservaRequest struct {
	DisponibilidadID uuid.UUID  `json:"disponibilidad_id" binding:"required"`
	MedicoID         *uuid.UUID `json:"medico_id"`
	EspecialidadID   *uuid.UUID `json:"especialidad_id"`
	Motivo           *string    `json:"motivo"`
}

// ReservaFilter narrows reservation listings to a date range.
type ReservaFilter struct {
	FechaInicio *time.Time `form:"fecha_inicio" time_format:"2006-01-02"`
	FechaFin    *time.Time `form:"fecha_fin" time_format:"2006-01-02"`
	Pagination
}
