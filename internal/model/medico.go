package model

import (
	"github.com/google/uuid"
)

// Medico is a staff member who publishes availability and writes fichas.
// Joined 1:1 with its Usuario account (created and deleted together).
type Medico struct {
	Base
	UsuarioID      uuid.UUID `json:"usuario_id" db:"usuario_id"`
	EspecialidadID uuid.UUID `json:"especialidad_id" db:"especialidad_id"`
	Telefono       string    `json:"telefono" db:"telefono"`

	// Joined columns, populated on reads.
	Nombre       string `json:"nombre,omitempty" db:"nombre"`
	Apellido     string `json:"apellido,omitempty" db:"apellido"`
	Rut          string `json:"rut,omitempty" db:"rut"`
	Especialidad string `json:"especialidad,omitempty" db:"especialidad"`
}

type CreateMedicoRequest struct {
	Rut            string    `json:"rut" binding:"required,rut"`
	Nombre         string    `json:"nombre" binding:"required"`
	Apellido       string    `json:"apellido" binding:"required"`
	Password       string    `json:"password" binding:"required,min=8"`
	EspecialidadID uuid.UUID `json:"especialidad_id" binding:"required"`
	Telefono       string    `json:"telefono"`
}

type UpdateMedicoRequest struct {
	Nombre         *string    `json:"nombre"`
	Apellido       *string    `json:"apellido"`
	Password       *string    `json:"password"`
	EspecialidadID *uuid.UUID `json:"especialidad_id"`
	Telefono       *string    `json:"telefono"`
}
