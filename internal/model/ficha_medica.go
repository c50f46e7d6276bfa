package model

import (
	"github.com/google/uuid"
)

// FichaMedica is the clinical record a medico writes after an
// appointment. Only the treating medico may touch it afterwards.
type FichaMedica struct {
	Base
	PacienteID    uuid.UUID  `json:"paciente_id" db:"paciente_id"`
	MedicoID      uuid.UUID  `json:"medico_id" db:"medico_id"`
	ReservaID     *uuid.UUID `json:"reserva_id" db:"reserva_id"`
	Diagnostico   string     `json:"diagnostico" db:"diagnostico"`
	Tratamiento   string     `json:"tratamiento" db:"tratamiento"`
	Observaciones string     `json:"observaciones" db:"observaciones"`

	// Joined columns, populated on reads.
	PacienteNombre string `json:"paciente_nombre,omitempty" db:"paciente_nombre"`
	PacienteRut    string `json:"paciente_rut,omitempty" db:"paciente_rut"`
}

type CreateFichaRequest struct {
	ReservaID     uuid.UUID `json:"reserva_id" binding:"required"`
	Diagnostico   string    `json:"diagnostico" binding:"required"`
	Tratamiento   string    `json:"tratamiento" binding:"required"`
	Observaciones string    `json:"observaciones"`
}

type UpdateFichaRequest struct {
	Diagnostico   *string `json:"diagnostico"`
	Tratamiento   *string `json:"tratamiento"`
	Observaciones *string `json:"observaciones"`
}

// FichaFilter narrows record listings by patient RUT and creation date.
type FichaFilter struct {
	Rut   string `form:"rut"`
	Fecha string `form:"fecha" binding:"omitempty,datetime=2006-01-02"`
	Pagination
}
