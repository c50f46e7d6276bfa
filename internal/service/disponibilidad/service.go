package disponibilidad

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
)

const fechaFormato = "02/01/2006 15:04"

type Service struct {
	repo repository.DisponibilidadRepository
}

func NewService(repo repository.DisponibilidadRepository) *Service {
	return &Service{repo: repo}
}

// Publish creates a free slot owned by medicoID. Slots in the past are
// unbookable, so they are rejected outright.
func (s *Service) Publish(ctx context.Context, medicoID uuid.UUID, req *model.CreateDisponibilidadRequest) (*model.Disponibilidad, error) {
	if req.FechaDisponible.Before(time.Now()) {
		return nil, apperrors.Validation("la fecha disponible no puede estar en el pasado", nil)
	}

	disp := &model.Disponibilidad{
		MedicoID:        medicoID,
		FechaDisponible: req.FechaDisponible,
	}
	if err := s.repo.Create(ctx, disp); err != nil {
		return nil, fmt.Errorf("failed to publish disponibilidad: %w", err)
	}
	return disp, nil
}

// ListOwn returns every slot the medico has published, claimed or not.
func (s *Service) ListOwn(ctx context.Context, medicoID uuid.UUID) ([]*model.Disponibilidad, error) {
	return s.repo.ListByMedico(ctx, medicoID)
}

// ListLibres returns free, future slots for the booking form.
func (s *Service) ListLibres(ctx context.Context, medicoID uuid.UUID) ([]*model.DisponibilidadLibre, error) {
	disps, err := s.repo.ListLibres(ctx, medicoID, time.Now())
	if err != nil {
		return nil, err
	}

	libres := make([]*model.DisponibilidadLibre, 0, len(disps))
	for _, d := range disps {
		libres = append(libres, &model.DisponibilidadLibre{
			ID:        d.ID,
			FechaHora: d.FechaDisponible.Local().Format(fechaFormato),
		})
	}
	return libres, nil
}

// Withdraw deletes a slot, but only for its owner and only while free.
func (s *Service) Withdraw(ctx context.Context, id, requestingMedicoID uuid.UUID) error {
	disp, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if disp.MedicoID != requestingMedicoID {
		return apperrors.Forbidden("la disponibilidad pertenece a otro médico", nil)
	}
	return s.repo.Delete(ctx, id)
}
