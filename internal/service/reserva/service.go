package reserva

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
	"github.com/clinicaustral/clinica-api/pkg/event"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

// Service is the reservation engine. Every mutation either claims or
// releases exactly one disponibilidad inside the repository's
// transaction, so the occupancy invariant holds no matter how the
// request interleaves with others.
type Service struct {
	repo         repository.ReservaRepository
	pacienteRepo repository.PacienteRepository
	emitter      *event.Emitter
}

func NewService(
	repo repository.ReservaRepository,
	pacienteRepo repository.PacienteRepository,
	emitter *event.Emitter,
) *Service {
	return &Service{
		repo:         repo,
		pacienteRepo: pacienteRepo,
		emitter:      emitter,
	}
}

// Create books a free slot for the patient identified by RUT. The slot
// claim and the reserva insert are one transaction; losing the claim
// race surfaces as a conflict and writes nothing.
func (s *Service) Create(ctx context.Context, req *model.CreateReservaRequest) (*model.Reserva, error) {
	paciente, err := s.pacienteRepo.GetByRut(ctx, rut.Normalize(req.RutPaciente))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("paciente", fmt.Errorf("no se encontró un paciente con este RUT"))
		}
		return nil, err
	}

	reserva := &model.Reserva{
		PacienteID:       paciente.ID,
		MedicoID:         req.MedicoID,
		EspecialidadID:   req.EspecialidadID,
		DisponibilidadID: req.DisponibilidadID,
		Motivo:           req.Motivo,
	}

	if err := s.repo.CreateClaiming(ctx, reserva); err != nil {
		return nil, err
	}

	created, err := s.repo.Get(ctx, reserva.ID)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, event.ReservaEvent{
		Type:            event.ReservaCreada,
		ReservaID:       created.ID,
		MedicoID:        created.MedicoID,
		PacienteNombre:  created.PacienteNombre,
		FechaDisponible: fechaOf(created),
	})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	return s.repo.Get(ctx, id)
}

// Reschedule rebinds the reserva to a new slot, optionally moving it to
// another medico. Retargeting the slot it already holds edits the
// remaining fields in place without touching slot state.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req *model.UpdateReservaRequest) (*model.Reserva, error) {
	reserva, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisponibilidadID == reserva.DisponibilidadID {
		return s.editInPlace(ctx, reserva, req)
	}

	oldSlotID := reserva.DisponibilidadID
	reserva.DisponibilidadID = req.DisponibilidadID
	if req.MedicoID != nil {
		reserva.MedicoID = *req.MedicoID
	}
	if req.EspecialidadID != nil {
		reserva.EspecialidadID = *req.EspecialidadID
	}
	if req.Motivo != nil {
		reserva.Motivo = *req.Motivo
	}

	if err := s.repo.UpdateRebinding(ctx, reserva, oldSlotID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, event.ReservaEvent{
		Type:            event.ReservaModificada,
		ReservaID:       updated.ID,
		MedicoID:        updated.MedicoID,
		PacienteNombre:  updated.PacienteNombre,
		FechaDisponible: fechaOf(updated),
	})
	return updated, nil
}

// editInPlace applies the non-slot fields of an update that keeps the
// reserva on its current slot. With nothing to change it is a pure
// no-op and emits no event.
func (s *Service) editInPlace(ctx context.Context, reserva *model.Reserva, req *model.UpdateReservaRequest) (*model.Reserva, error) {
	changed := false
	if req.EspecialidadID != nil && *req.EspecialidadID != reserva.EspecialidadID {
		reserva.EspecialidadID = *req.EspecialidadID
		changed = true
	}
	if req.Motivo != nil && *req.Motivo != reserva.Motivo {
		reserva.Motivo = *req.Motivo
		changed = true
	}
	if !changed {
		return reserva, nil
	}

	if err := s.repo.Update(ctx, reserva); err != nil {
		return nil, err
	}

	updated, err := s.repo.Get(ctx, reserva.ID)
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, event.ReservaEvent{
		Type:            event.ReservaModificada,
		ReservaID:       updated.ID,
		MedicoID:        updated.MedicoID,
		PacienteNombre:  updated.PacienteNombre,
		FechaDisponible: fechaOf(updated),
	})
	return updated, nil
}

// Cancel releases the slot and deletes the reserva atomically.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	reserva, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteReleasing(ctx, reserva); err != nil {
		return err
	}

	s.emitter.Emit(ctx, event.ReservaEvent{
		Type:            event.ReservaEliminada,
		ReservaID:       reserva.ID,
		MedicoID:        reserva.MedicoID,
		PacienteNombre:  reserva.PacienteNombre,
		FechaDisponible: fechaOf(reserva),
	})
	return nil
}

func (s *Service) List(ctx context.Context, filter *model.ReservaFilter) (*model.PageResult[*model.Reserva], error) {
	if (filter.FechaInicio == nil) != (filter.FechaFin == nil) {
		return nil, apperrors.Validation("fecha_inicio y fecha_fin deben indicarse juntas", nil)
	}
	filter.Normalize(defaultPageSize, maxPageSize)

	reservas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.PageResult[*model.Reserva]{
		Items:    reservas,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// AgendaHoy returns the medico's remaining reservations for today.
func (s *Service) AgendaHoy(ctx context.Context, medicoID uuid.UUID) ([]*model.Reserva, error) {
	return s.repo.ListHoyByMedico(ctx, medicoID, time.Now())
}

func fechaOf(r *model.Reserva) time.Time {
	if r.FechaDisponible != nil {
		return *r.FechaDisponible
	}
	return time.Time{}
}
