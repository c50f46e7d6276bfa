package especialidad

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
)

type Service struct {
	repo repository.EspecialidadRepository
}

func NewService(repo repository.EspecialidadRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateEspecialidadRequest) (*model.Especialidad, error) {
	esp := &model.Especialidad{Nombre: req.Nombre}
	if err := s.repo.Create(ctx, esp); err != nil {
		return nil, fmt.Errorf("failed to create especialidad: %w", err)
	}
	return esp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Especialidad, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Especialidad, error) {
	return s.repo.List(ctx)
}
