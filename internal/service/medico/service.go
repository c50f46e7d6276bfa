package medico

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
	repo             repository.MedicoRepository
	usuarioRepo      repository.UsuarioRepository
	especialidadRepo repository.EspecialidadRepository
}

func NewService(repo repository.MedicoRepository, usuarioRepo repository.UsuarioRepository, especialidadRepo repository.EspecialidadRepository) *Service {
	return &Service{
		repo:             repo,
		usuarioRepo:      usuarioRepo,
		especialidadRepo: especialidadRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateMedicoRequest) (*model.Medico, error) {
	req.Rut = rut.Normalize(req.Rut)
	if !rut.Valid(req.Rut) {
		return nil, apperrors.Validation("el RUT debe estar en el formato 12345678-9", nil)
	}

	if _, err := s.especialidadRepo.Get(ctx, req.EspecialidadID); err != nil {
		return nil, fmt.Errorf("invalid especialidad: %w", err)
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
		Role:         model.RoleMedico,
		Activo:       true,
	}
	medico := &model.Medico{
		EspecialidadID: req.EspecialidadID,
		Telefono:       req.Telefono,
	}

	if err := s.repo.Create(ctx, user, medico); err != nil {
		return nil, fmt.Errorf("failed to create medico: %w", err)
	}

	return s.repo.Get(ctx, medico.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Medico, error) {
	return s.repo.Get(ctx, id)
}

// GetByUsuario resolves the medico profile behind an authenticated
// account, used by every medico-gated handler.
func (s *Service) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Medico, error) {
	return s.repo.GetByUsuario(ctx, usuarioID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMedicoRequest) (*model.Medico, error) {
	medico, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.usuarioRepo.Get(ctx, medico.UsuarioID)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		user.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		user.Apellido = *req.Apellido
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.EspecialidadID != nil {
		if _, err := s.especialidadRepo.Get(ctx, *req.EspecialidadID); err != nil {
			return nil, fmt.Errorf("invalid especialidad: %w", err)
		}
		medico.EspecialidadID = *req.EspecialidadID
	}
	if req.Telefono != nil {
		medico.Telefono = *req.Telefono
	}

	if err := s.repo.Update(ctx, user, medico); err != nil {
		return nil, fmt.Errorf("failed to update medico: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Medico, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByEspecialidad(ctx context.Context, especialidadID uuid.UUID) ([]*model.Medico, error) {
	return s.repo.ListByEspecialidad(ctx, especialidadID)
}
