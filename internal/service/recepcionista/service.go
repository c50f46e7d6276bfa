package recepcionista

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
	"github.com/clinicaustral/clinica-api/internal/service/auth"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

type Service struct {
	repo        repository.RecepcionistaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewService(repo repository.RecepcionistaRepository, usuarioRepo repository.UsuarioRepository) *Service {
	return &Service{
		repo:        repo,
		usuarioRepo: usuarioRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateRecepcionistaRequest) (*model.Recepcionista, error) {
	req.Rut = rut.Normalize(req.Rut)
	if !rut.Valid(req.Rut) {
		return nil, apperrors.Validation("el RUT debe estar en el formato 12345678-9", nil)
	}

	exists, err := s.usuarioRepo.ExistsRut(ctx, req.Rut, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("ya existe un usuario con este RUT", nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Rut:          req.Rut,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		PasswordHash: hash,
		Role:         model.RoleRecepcionista,
		Activo:       true,
	}
	rec := &model.Recepcionista{
		Telefono:          req.Telefono,
		Direccion:         req.Direccion,
		FechaContratacion: req.FechaContratacion,
	}

	if err := s.repo.Create(ctx, user, rec); err != nil {
		return nil, fmt.Errorf("failed to create recepcionista: %w", err)
	}
	return s.repo.Get(ctx, rec.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Recepcionista, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateRecepcionistaRequest) (*model.Recepcionista, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.usuarioRepo.Get(ctx, rec.UsuarioID)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		user.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		user.Apellido = *req.Apellido
	}
	if req.Telefono != nil {
		rec.Telefono = *req.Telefono
	}
	if req.Direccion != nil {
		rec.Direccion = *req.Direccion
	}

	if err := s.repo.Update(ctx, user, rec); err != nil {
		return nil, fmt.Errorf("failed to update recepcionista: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Recepcionista, error) {
	return s.repo.List(ctx)
}
