package model

import (
	"time"
)

// Paciente is identified by RUT and has no login account.
type Paciente struct {
	Base
	Rut             string     `json:"rut" db:"rut"`
	Nombre          string     `json:"nombre" db:"nombre"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Direccion       string     `json:"direccion" db:"direccion"`
	Telefono        string     `json:"telefono" db:"telefono"`
	Email           string     `json:"email" db:"email"`
}

// Edad returns the patient's age in full years, or false when the birth
// date was never registered.
func (p *Paciente) Edad(hoy time.Time) (int, bool) {
	if p.FechaNacimiento == nil {
		return 0, false
	}
	nac := *p.FechaNacimiento
	edad := hoy.Year() - nac.Year()
	if hoy.Month() < nac.Month() || (hoy.Month() == nac.Month() && hoy.Day() < nac.Day()) {
		edad--
	}
	return edad, true
}

type CreatePacienteRequest struct {
	Rut             string     `json:"rut" binding:"required,rut"`
	Nombre          string     `json:"nombre" binding:"required"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Direccion       string     `json:"direccion"`
	Telefono        string     `json:"telefono"`
	Email           string     `json:"email" binding:"omitempty,email"`
}

type UpdatePacienteRequest struct {
	Nombre          *string    `json:"nombre"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Direccion       *string    `json:"direccion"`
	Telefono        *string    `json:"telefono"`
	Email           *string    `json:"email" binding:"omitempty,email"`
}

// PacienteFilter narrows patient listings.
type PacienteFilter struct {
	Rut string `form:"rut"`
	Pagination
}
