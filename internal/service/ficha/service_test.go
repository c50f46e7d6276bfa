package ficha

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicaustral/clinica-api/internal/model"
	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"
)

type fakeFichaRepo struct {
	fichas map[uuid.UUID]*model.FichaMedica
}

func newFakeFichaRepo() *fakeFichaRepo {
	return &fakeFichaRepo{fichas: make(map[uuid.UUID]*model.FichaMedica)}
}

func (r *fakeFichaRepo) Create(_ context.Context, f *model.FichaMedica) error {
	f.ID = uuid.New()
	stored := *f
	r.fichas[f.ID] = &stored
	return nil
}

func (r *fakeFichaRepo) Get(_ context.Context, id uuid.UUID) (*model.FichaMedica, error) {
	if f, ok := r.fichas[id]; ok {
		out := *f
		return &out, nil
	}
	return nil, apperrors.NotFound("ficha", nil)
}

func (r *fakeFichaRepo) Update(_ context.Context, f *model.FichaMedica) error {
	if _, ok := r.fichas[f.ID]; !ok {
		return apperrors.NotFound("ficha", nil)
	}
	stored := *f
	r.fichas[f.ID] = &stored
	return nil
}

func (r *fakeFichaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.fichas[id]; !ok {
		return apperrors.NotFound("ficha", nil)
	}
	delete(r.fichas, id)
	return nil
}

func (r *fakeFichaRepo) List(_ context.Context, _ *model.FichaFilter) ([]*model.FichaMedica, int, error) {
	var out []*model.FichaMedica
	for _, f := range r.fichas {
		out = append(out, f)
	}
	return out, len(out), nil
}

func (r *fakeFichaRepo) ListByPacienteRut(_ context.Context, _ string) ([]*model.FichaMedica, error) {
	return nil, nil
}

type fakeReservaRepo struct {
	reservas map[uuid.UUID]*model.Reserva
}

func (r *fakeReservaRepo) Get(_ context.Context, id uuid.UUID) (*model.Reserva, error) {
	if res, ok := r.reservas[id]; ok {
		return res, nil
	}
	return nil, apperrors.NotFound("reserva", nil)
}

func (r *fakeReservaRepo) CreateClaiming(_ context.Context, _ *model.Reserva) error { return nil }
func (r *fakeReservaRepo) Update(_ context.Context, _ *model.Reserva) error         { return nil }
func (r *fakeReservaRepo) UpdateRebinding(_ context.Context, _ *model.Reserva, _ uuid.UUID) error {
	return nil
}
func (r *fakeReservaRepo) DeleteReleasing(_ context.Context, _ *model.Reserva) error { return nil }
func (r *fakeReservaRepo) List(_ context.Context, _ *model.ReservaFilter) ([]*model.Reserva, int, error) {
	return nil, 0, nil
}
func (r *fakeReservaRepo) ListHoyByMedico(_ context.Context, _ uuid.UUID, _ time.Time) ([]*model.Reserva, error) {
	return nil, nil
}
func (r *fakeReservaRepo) Count(_ context.Context) (int, error) { return 0, nil }

func addReserva(repo *fakeReservaRepo, medicoID uuid.UUID) *model.Reserva {
	res := &model.Reserva{
		PacienteID:       uuid.New(),
		MedicoID:         medicoID,
		EspecialidadID:   uuid.New(),
		DisponibilidadID: uuid.New(),
	}
	res.ID = uuid.New()
	repo.reservas[res.ID] = res
	return res
}

func TestCreateFichaDesdeReservaPropia(t *testing.T) {
	fichaRepo := newFakeFichaRepo()
	reservaRepo := &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
	svc := NewService(fichaRepo, reservaRepo)

	medicoID := uuid.New()
	res := addReserva(reservaRepo, medicoID)

	f, err := svc.Create(context.Background(), medicoID, &model.CreateFichaRequest{
		ReservaID:   res.ID,
		Diagnostico: "resfrío común",
		Tratamiento: "reposo",
	})
	require.NoError(t, err)
	assert.Equal(t, res.PacienteID, f.PacienteID)
	assert.Equal(t, medicoID, f.MedicoID)
	require.NotNil(t, f.ReservaID)
	assert.Equal(t, res.ID, *f.ReservaID)
}

func TestCreateFichaReservaAjena(t *testing.T) {
	fichaRepo := newFakeFichaRepo()
	reservaRepo := &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
	svc := NewService(fichaRepo, reservaRepo)

	res := addReserva(reservaRepo, uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateFichaRequest{
		ReservaID:   res.ID,
		Diagnostico: "resfrío común",
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Empty(t, fichaRepo.fichas)
}

func TestUpdateFichaAjena(t *testing.T) {
	fichaRepo := newFakeFichaRepo()
	reservaRepo := &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
	svc := NewService(fichaRepo, reservaRepo)

	medicoID := uuid.New()
	res := addReserva(reservaRepo, medicoID)
	f, err := svc.Create(context.Background(), medicoID, &model.CreateFichaRequest{
		ReservaID:   res.ID,
		Diagnostico: "original",
	})
	require.NoError(t, err)

	nuevo := "alterado"
	_, err = svc.Update(context.Background(), f.ID, uuid.New(), &model.UpdateFichaRequest{
		Diagnostico: &nuevo,
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	kept, err := svc.Get(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", kept.Diagnostico)
}

func TestUpdateFichaPropia(t *testing.T) {
	fichaRepo := newFakeFichaRepo()
	reservaRepo := &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
	svc := NewService(fichaRepo, reservaRepo)

	medicoID := uuid.New()
	res := addReserva(reservaRepo, medicoID)
	f, err := svc.Create(context.Background(), medicoID, &model.CreateFichaRequest{
		ReservaID:   res.ID,
		Diagnostico: "original",
	})
	require.NoError(t, err)

	nuevo := "corregido"
	updated, err := svc.Update(context.Background(), f.ID, medicoID, &model.UpdateFichaRequest{
		Diagnostico: &nuevo,
	})
	require.NoError(t, err)
	assert.Equal(t, "corregido", updated.Diagnostico)
}

func TestDeleteFichaAjena(t *testing.T) {
	fichaRepo := newFakeFichaRepo()
	reservaRepo := &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
	svc := NewService(fichaRepo, reservaRepo)

	medicoID := uuid.New()
	res := addReserva(reservaRepo, medicoID)
	f, err := svc.Create(context.Background(), medicoID, &model.CreateFichaRequest{
		ReservaID: res.ID,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), f.ID, uuid.New())
	require.Error(t, err)
	assert.Contains(t, fichaRepo.fichas, f.ID)

	require.NoError(t, svc.Delete(context.Background(), f.ID, medicoID))
	assert.NotContains(t, fichaRepo.fichas, f.ID)
}
