package paciente

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

type Service struct {
	repo repository.PacienteRepository
}

func NewService(repo repository.PacienteRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePacienteRequest) (*model.Paciente, error) {
	req.Rut = rut.Normalize(req.Rut)
	if !rut.Valid(req.Rut) {
		return nil, apperrors.Validation("el RUT debe estar en el formato 12345678-9", nil)
	}

	paciente := &model.Paciente{
		Rut:             req.Rut,
		Nombre:          req.Nombre,
		FechaNacimiento: req.FechaNacimiento,
		Direccion:       req.Direccion,
		Telefono:        req.Telefono,
		Email:           req.Email,
	}

	if err := s.repo.Create(ctx, paciente); err != nil {
		return nil, fmt.Errorf("failed to create paciente: %w", err)
	}
	return paciente, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByRut(ctx context.Context, pacienteRut string) (*model.Paciente, error) {
	return s.repo.GetByRut(ctx, rut.Normalize(pacienteRut))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePacienteRequest) (*model.Paciente, error) {
	paciente, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		paciente.Nombre = *req.Nombre
	}
	if req.FechaNacimiento != nil {
		paciente.FechaNacimiento = req.FechaNacimiento
	}
	if req.Direccion != nil {
		paciente.Direccion = *req.Direccion
	}
	if req.Telefono != nil {
		paciente.Telefono = *req.Telefono
	}
	if req.Email != nil {
		paciente.Email = *req.Email
	}

	if err := s.repo.Update(ctx, paciente); err != nil {
		return nil, fmt.Errorf("failed to update paciente: %w", err)
	}
	return paciente, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.PacienteFilter) (*model.PageResult[*model.Paciente], error) {
	filter.Normalize(defaultPageSize, maxPageSize)

	pacientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.PageResult[*model.Paciente]{
		Items:    pacientes,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ValidarRutResponse is the booking-form lookup payload: name plus age,
// with age omitted when no birth date was registered.
type ValidarRutResponse struct {
	Nombre string `json:"nombre"`
	Edad   *int   `json:"edad,omitempty"`
}

// ValidarRut resolves a patient by RUT for the reservation form.
func (s *Service) ValidarRut(ctx context.Context, pacienteRut string) (*ValidarRutResponse, error) {
	paciente, err := s.repo.GetByRut(ctx, rut.Normalize(pacienteRut))
	if err != nil {
		return nil, err
	}

	resp := &ValidarRutResponse{Nombre: paciente.Nombre}
	if edad, ok := paciente.Edad(time.Now()); ok {
		resp.Edad = &edad
	}
	return resp, nil
}
