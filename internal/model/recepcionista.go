package model

import (
	"time"

	"github.com/google/uuid"
)

// Recepcionista manages patients and reservations. Joined 1:1 with its
// Usuario account.
type Recepcionista struct {
	Base
	UsuarioID         uuid.UUID  `json:"usuario_id" db:"usuario_id"`
	Telefono          string     `json:"telefono" db:"telefono"`
	Direccion         string     `json:"direccion" db:"direccion"`
	FechaContratacion *time.Time `json:"fecha_contratacion" db:"fecha_contratacion"`

	// Joined columns, populated on reads.
	Nombre   string `json:"nombre,omitempty" db:"nombre"`
	Apellido string `json:"apellido,omitempty" db:"apellido"`
	Rut      string `json:"rut,omitempty" db:"rut"`
}

type CreateRecepcionistaRequest struct {
	Rut               string     `json:"rut" binding:"required,rut"`
	Nombre            string     `json:"nombre" binding:"required"`
	Apellido          string     `json:"apellido" binding:"required"`
	Password          string     `json:"password" binding:"required,min=8"`
	Telefono          string     `json:"telefono"`
	Direccion         string     `json:"direccion"`
	FechaContratacion *time.Time `json:"fecha_contratacion"`
}

type UpdateRecepcionistaRequest struct {
	Nombre    *string `json:"nombre"`
	Apellido  *string `json:"apellido"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}
