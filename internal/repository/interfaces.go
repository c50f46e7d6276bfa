package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/model"
)

// All repository interfaces in one file
type (
	// UsuarioRepository handles authentication accounts.
	UsuarioRepository interface {
		Create(ctx context.Context, user *model.Usuario) error
		Get(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
		GetByRut(ctx context.Context, rut string) (*model.Usuario, error)
		Update(ctx context.Context, user *model.Usuario) error
		ExistsRut(ctx context.Context, rut string, excludeID *uuid.UUID) (bool, error)
	}

	// MedicoRepository manages medicos and their 1:1 usuario accounts.
	MedicoRepository interface {
		Create(ctx context.Context, user *model.Usuario, medico *model.Medico) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medico, error)
		GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Medico, error)
		Update(ctx context.Context, user *model.Usuario, medico *model.Medico) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Medico, error)
		ListByEspecialidad(ctx context.Context, especialidadID uuid.UUID) ([]*model.Medico, error)
		Count(ctx context.Context) (int, error)
	}

	RecepcionistaRepository interface {
		Create(ctx context.Context, user *model.Usuario, rec *model.Recepcionista) error
		Get(ctx context.Context, id uuid.UUID) (*model.Recepcionista, error)
		Update(ctx context.Context, user *model.Usuario, rec *model.Recepcionista) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Recepcionista, error)
		Count(ctx context.Context) (int, error)
	}

	PacienteRepository interface {
		Create(ctx context.Context, paciente *model.Paciente) error
		Get(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
		GetByRut(ctx context.Context, rut string) (*model.Paciente, error)
		Update(ctx context.Context, paciente *model.Paciente) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.PacienteFilter) ([]*model.Paciente, int, error)
		Count(ctx context.Context) (int, error)
	}

	EspecialidadRepository interface {
		Create(ctx context.Context, esp *model.Especialidad) error
		Get(ctx context.Context, id uuid.UUID) (*model.Especialidad, error)
		List(ctx context.Context) ([]*model.Especialidad, error)
	}

	// DisponibilidadRepository owns the slot table. Claim and Release are
	// only called from within reservation transactions; Claim is
	// conditional on the slot being free and owned by the given medico.
	DisponibilidadRepository interface {
		Create(ctx context.Context, disp *model.Disponibilidad) error
		Get(ctx context.Context, id uuid.UUID) (*model.Disponibilidad, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByMedico(ctx context.Context, medicoID uuid.UUID) ([]*model.Disponibilidad, error)
		ListLibres(ctx context.Context, medicoID uuid.UUID, desde time.Time) ([]*model.Disponibilidad, error)
	}

	// ReservaRepository implements the claim/release state machine. The
	// transactional methods either fully succeed or leave every slot flag
	// as it was.
	ReservaRepository interface {
		CreateClaiming(ctx context.Context, reserva *model.Reserva) error
		Get(ctx context.Context, id uuid.UUID) (*model.Reserva, error)
		Update(ctx context.Context, reserva *model.Reserva) error
		UpdateRebinding(ctx context.Context, reserva *model.Reserva, oldSlotID uuid.UUID) error
		DeleteReleasing(ctx context.Context, reserva *model.Reserva) error
		List(ctx context.Context, filter *model.ReservaFilter) ([]*model.Reserva, int, error)
		ListHoyByMedico(ctx context.Context, medicoID uuid.UUID, ahora time.Time) ([]*model.Reserva, error)
		Count(ctx context.Context) (int, error)
	}

	FichaMedicaRepository interface {
		Create(ctx context.Context, ficha *model.FichaMedica) error
		Get(ctx context.Context, id uuid.UUID) (*model.FichaMedica, error)
		Update(ctx context.Context, ficha *model.FichaMedica) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.FichaFilter) ([]*model.FichaMedica, int, error)
		ListByPacienteRut(ctx context.Context, rut string) ([]*model.FichaMedica, error)
	}
)
