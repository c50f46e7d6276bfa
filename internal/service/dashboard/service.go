package dashboard

import (
	"context"
	"fmt"

	"github.com/clinicaustral/clinica-api/internal/repository"
)

// Stats are the admin landing-page counters.
type Stats struct {
	TotalMedicos        int `json:"total_medicos"`
	TotalRecepcionistas int `json:"total_recepcionistas"`
	TotalPacientes      int `json:"total_pacientes"`
	TotalReservas       int `json:"total_reservas"`
}

type Service struct {
	medicoRepo        repository.MedicoRepository
	recepcionistaRepo repository.RecepcionistaRepository
	pacienteRepo      repository.PacienteRepository
	reservaRepo       repository.ReservaRepository
}

func NewService(
	medicoRepo repository.MedicoRepository,
	recepcionistaRepo repository.RecepcionistaRepository,
	pacienteRepo repository.PacienteRepository,
	reservaRepo repository.ReservaRepository,
) *Service {
	return &Service{
		medicoRepo:        medicoRepo,
		recepcionistaRepo: recepcionistaRepo,
		pacienteRepo:      pacienteRepo,
		reservaRepo:       reservaRepo,
	}
}

func (s *Service) AdminStats(ctx context.Context) (*Stats, error) {
	medicos, err := s.medicoRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count medicos: %w", err)
	}
	recepcionistas, err := s.recepcionistaRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count recepcionistas: %w", err)
	}
	pacientes, err := s.pacienteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pacientes: %w", err)
	}
	reservas, err := s.reservaRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservas: %w", err)
	}

	return &Stats{
		TotalMedicos:        medicos,
		TotalRecepcionistas: recepcionistas,
		TotalPacientes:      pacientes,
		TotalReservas:       reservas,
	}, nil
}
