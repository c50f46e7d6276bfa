package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/clinicaustral/clinica-api/internal/repository"
)

type usuarioRepository struct {
	BaseRepository
}

type medicoRepository struct {
	BaseRepository
}

type recepcionistaRepository struct {
	BaseRepository
}

type pacienteRepository struct {
	BaseRepository
}

type especialidadRepository struct {
	BaseRepository
}

type disponibilidadRepository struct {
	BaseRepository
}

type reservaRepository struct {
	BaseRepository
}

type fichaMedicaRepository struct {
	BaseRepository
}

func NewUsuarioRepository(db *sqlx.DB) repository.UsuarioRepository {
	return &usuarioRepository{NewBaseRepository(db)}
}

func NewMedicoRepository(db *sqlx.DB) repository.MedicoRepository {
	return &medicoRepository{NewBaseRepository(db)}
}

func NewRecepcionistaRepository(db *sqlx.DB) repository.RecepcionistaRepository {
	return &recepcionistaRepository{NewBaseRepository(db)}
}

func NewPacienteRepository(db *sqlx.DB) repository.PacienteRepository {
	return &pacienteRepository{NewBaseRepository(db)}
}

func NewEspecialidadRepository(db *sqlx.DB) repository.EspecialidadRepository {
	return &especialidadRepository{NewBaseRepository(db)}
}

func NewDisponibilidadRepository(db *sqlx.DB) repository.DisponibilidadRepository {
	return &disponibilidadRepository{NewBaseRepository(db)}
}

func NewReservaRepository(db *sqlx.DB) repository.ReservaRepository {
	return &reservaRepository{NewBaseRepository(db)}
}

func NewFichaMedicaRepository(db *sqlx.DB) repository.FichaMedicaRepository {
	return &fichaMedicaRepository{NewBaseRepository(db)}
}
