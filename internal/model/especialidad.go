package model

// Especialidad is a named category of medical practice.
type Especialidad struct {
	Base
	Nombre string `json:"nombre" db:"nombre"`
}

type CreateEspecialidadRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}
