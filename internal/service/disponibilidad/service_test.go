package disponibilidad

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

type fakeRepo struct {
	slots map[uuid.UUID]*model.Disponibilidad
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: make(map[uuid.UUID]*model.Disponibilidad)}
}

func (r *fakeRepo) Create(_ context.Context, d *model.Disponibilidad) error {
	d.ID = uuid.New()
	r.slots[d.ID] = d
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Disponibilidad, error) {
	if d, ok := r.slots[id]; ok {
		return d, nil
	}
	return nil, apperrors.NotFound("disponibilidad", nil)
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	d, ok := r.slots[id]
	if !ok {
		return apperrors.NotFound("disponibilidad", nil)
	}
	if d.Ocupada {
		return apperrors.Conflict("la disponibilidad tiene una reserva activa", nil)
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeRepo) ListByMedico(_ context.Context, medicoID uuid.UUID) ([]*model.Disponibilidad, error) {
	var out []*model.Disponibilidad
	for _, d := range r.slots {
		if d.MedicoID == medicoID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListLibres(_ context.Context, medicoID uuid.UUID, desde time.Time) ([]*model.Disponibilidad, error) {
	var out []*model.Disponibilidad
	for _, d := range r.slots {
		if d.MedicoID == medicoID && !d.Ocupada && d.FechaDisponible.After(desde) {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestPublishRechazaFechaPasada(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Publish(context.Background(), uuid.New(), &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(-time.Hour),
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestPublishCreaSlotLibre(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	medicoID := uuid.New()

	disp, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, medicoID, disp.MedicoID)
	assert.False(t, disp.Ocupada)
	assert.Contains(t, repo.slots, disp.ID)
}

func TestWithdrawDeOtroMedico(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	disp, err := svc.Publish(context.Background(), uuid.New(), &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	err = svc.Withdraw(context.Background(), disp.ID, uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Contains(t, repo.slots, disp.ID, "foreign withdraw must not delete")
}

func TestWithdrawSlotOcupada(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	medicoID := uuid.New()

	disp, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	repo.slots[disp.ID].Ocupada = true

	err = svc.Withdraw(context.Background(), disp.ID, medicoID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, repo.slots, disp.ID)
}

func TestWithdrawSlotLibre(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	medicoID := uuid.New()

	disp, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(context.Background(), disp.ID, medicoID))
	assert.NotContains(t, repo.slots, disp.ID)
}

func TestListLibresFormateaFecha(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	medicoID := uuid.New()

	fecha := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	_, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: fecha,
	})
	require.NoError(t, err)

	libres, err := svc.ListLibres(context.Background(), medicoID)
	require.NoError(t, err)
	require.Len(t, libres, 1)
	assert.Equal(t, fecha.Local().Format("02/01/2006 15:04"), libres[0].FechaHora)
}

func TestListLibresExcluyeOcupadas(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	medicoID := uuid.New()

	libreDisp, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	ocupada, err := svc.Publish(context.Background(), medicoID, &model.CreateDisponibilidadRequest{
		FechaDisponible: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	repo.slots[ocupada.ID].Ocupada = true

	libres, err := svc.ListLibres(context.Background(), medicoID)
	require.NoError(t, err)
	require.Len(t, libres, 1)
	assert.Equal(t, libreDisp.ID, libres[0].ID)
}
