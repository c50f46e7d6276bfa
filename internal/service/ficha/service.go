package ficha

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	repo        repository.FichaMedicaRepository
	reservaRepo repository.ReservaRepository
}

func NewService(repo repository.FichaMedicaRepository, reservaRepo repository.ReservaRepository) *Service {
	return &Service{
		repo:        repo,
		reservaRepo: reservaRepo,
	}
}

// Create writes a ficha from one of the medico's own reservations;
// another medico's reserva is off limits.
func (s *Service) Create(ctx context.Context, medicoID uuid.UUID, req *model.CreateFichaRequest) (*model.FichaMedica, error) {
	reserva, err := s.reservaRepo.Get(ctx, req.ReservaID)
	if err != nil {
		return nil, err
	}
	if reserva.MedicoID != medicoID {
		return nil, apperrors.Forbidden("la reserva pertenece a otro médico", nil)
	}

	reservaID := reserva.ID
	ficha := &model.FichaMedica{
		PacienteID:    reserva.PacienteID,
		MedicoID:      medicoID,
		ReservaID:     &reservaID,
		Diagnostico:   req.Diagnostico,
		Tratamiento:   req.Tratamiento,
		Observaciones: req.Observaciones,
	}

	if err := s.repo.Create(ctx, ficha); err != nil {
		return nil, fmt.Errorf("failed to create ficha: %w", err)
	}
	return s.repo.Get(ctx, ficha.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.FichaMedica, error) {
	return s.repo.Get(ctx, id)
}

// Update is restricted to the treating medico.
func (s *Service) Update(ctx context.Context, id, medicoID uuid.UUID, req *model.UpdateFichaRequest) (*model.FichaMedica, error) {
	ficha, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ficha.MedicoID != medicoID {
		return nil, apperrors.Forbidden("la ficha pertenece a otro médico", nil)
	}

	if req.Diagnostico != nil {
		ficha.Diagnostico = *req.Diagnostico
	}
	if req.Tratamiento != nil {
		ficha.Tratamiento = *req.Tratamiento
	}
	if req.Observaciones != nil {
		ficha.Observaciones = *req.Observaciones
	}

	if err := s.repo.Update(ctx, ficha); err != nil {
		return nil, fmt.Errorf("failed to update ficha: %w", err)
	}
	return ficha, nil
}

// Delete is restricted to the treating medico.
func (s *Service) Delete(ctx context.Context, id, medicoID uuid.UUID) error {
	ficha, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if ficha.MedicoID != medicoID {
		return apperrors.Forbidden("la ficha pertenece a otro médico", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.FichaFilter) (*model.PageResult[*model.FichaMedica], error) {
	filter.Normalize(defaultPageSize, maxPageSize)

	fichas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.PageResult[*model.FichaMedica]{
		Items:    fichas,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListByPaciente returns the full history for one patient RUT.
func (s *Service) ListByPaciente(ctx context.Context, pacienteRut string) ([]*model.FichaMedica, error) {
	return s.repo.ListByPacienteRut(ctx, rut.Normalize(pacienteRut))
}
