package paciente

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicaustral/clinica-api/internal/model"
	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"
)

type fakeRepo struct {
	pacientes map[uuid.UUID]*model.Paciente
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{pacientes: make(map[uuid.UUID]*model.Paciente)}
}

func (r *fakeRepo) Create(_ context.Context, p *model.Paciente) error {
	for _, existing := range r.pacientes {
		if existing.Rut == p.Rut {
			return apperrors.Validation("el RUT ingresado ya está registrado", nil)
		}
	}
	p.ID = uuid.New()
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Paciente, error) {
	if p, ok := r.pacientes[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("paciente", nil)
}

func (r *fakeRepo) GetByRut(_ context.Context, rut string) (*model.Paciente, error) {
	for _, p := range r.pacientes {
		if p.Rut == rut {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("paciente", nil)
}

func (r *fakeRepo) Update(_ context.Context, p *model.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pacientes, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter *model.PacienteFilter) ([]*model.Paciente, int, error) {
	var matched []*model.Paciente
	for _, p := range r.pacientes {
		if filter.Rut == "" || strings.Contains(p.Rut, filter.Rut) {
			matched = append(matched, p)
		}
	}
	total := len(matched)

	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) { return len(r.pacientes), nil }

func TestCreatePacienteRutInvalido(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:    "1234-9",
		Nombre: "Ana Soto",
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreatePacienteNormalizaRut(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:    "  12345678-9  ",
		Nombre: "Ana Soto",
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678-9", p.Rut)
}

func TestCreatePacienteRutDuplicado(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:    "12345678-9",
		Nombre: "Ana Soto",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:    "12345678-9",
		Nombre: "Otra Persona",
	})
	require.Error(t, err)
}

func TestListPaginaPorDefecto(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	ruts := []string{"11111111-1", "22222222-2", "33333333-3", "44444444-4", "55555555-5", "66666666-6", "77777777-7"}
	for _, r := range ruts {
		_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{Rut: r, Nombre: "Paciente"})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), &model.PacienteFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5, "default page holds five patients")
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 1, page.Page)

	page, err = svc.List(context.Background(), &model.PacienteFilter{Pagination: model.Pagination{Page: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestListFiltraPorRut(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{Rut: "12345678-9", Nombre: "Ana"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &model.CreatePacienteRequest{Rut: "98765432-1", Nombre: "Pedro"})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), &model.PacienteFilter{Rut: "1234"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ana", page.Items[0].Nombre)
}

func TestValidarRutConEdad(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	nacimiento := time.Now().AddDate(-30, 0, -1)
	_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:             "12345678-9",
		Nombre:          "Ana Soto",
		FechaNacimiento: &nacimiento,
	})
	require.NoError(t, err)

	resp, err := svc.ValidarRut(context.Background(), "12345678-9")
	require.NoError(t, err)
	assert.Equal(t, "Ana Soto", resp.Nombre)
	require.NotNil(t, resp.Edad)
	assert.Equal(t, 30, *resp.Edad)
}

func TestValidarRutSinFechaNacimiento(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &model.CreatePacienteRequest{
		Rut:    "12345678-9",
		Nombre: "Ana Soto",
	})
	require.NoError(t, err)

	resp, err := svc.ValidarRut(context.Background(), "12345678-9")
	require.NoError(t, err)
	assert.Nil(t, resp.Edad)
}

func TestValidarRutDesconocido(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.ValidarRut(context.Background(), "11111111-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
