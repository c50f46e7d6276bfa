package medico

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
)

type fakeStaff struct {
	usuarios map[uuid.UUID]*model.Usuario
	medicos  map[uuid.UUID]*model.Medico
	esps     map[uuid.UUID]*model.Especialidad
}

func newFakeStaff() *fakeStaff {
	return &fakeStaff{
		usuarios: map[uuid.UUID]*model.Usuario{},
		medicos:  map[uuid.UUID]*model.Medico{},
		esps:     map[uuid.UUID]*model.Especialidad{},
	}
}

func (f *fakeStaff) addEspecialidad(nombre string) *model.Especialidad {
	esp := &model.Especialidad{Nombre: nombre}
	esp.ID = uuid.New()
	f.esps[esp.ID] = esp
	return esp
}

type fakeUsuarioRepo struct{ f *fakeStaff }

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uuid.New()
	r.f.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) Get(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	if u, ok := r.f.usuarios[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("usuario", nil)
}

func (r *fakeUsuarioRepo) GetByRut(_ context.Context, rut string) (*model.Usuario, error) {
	for _, u := range r.f.usuarios {
		if u.Rut == rut {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("usuario", nil)
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.f.usuarios[u.ID]; !ok {
		return apperrors.NotFound("usuario", nil)
	}
	r.f.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) ExistsRut(_ context.Context, rut string, excludeID *uuid.UUID) (bool, error) {
	for _, u := range r.f.usuarios {
		if u.Rut == rut && (excludeID == nil || u.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

type fakeMedicoRepo struct{ f *fakeStaff }

func (r *fakeMedicoRepo) Create(_ context.Context, user *model.Usuario, medico *model.Medico) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.f.usuarios[user.ID] = user

	medico.ID = uuid.New()
	medico.UsuarioID = user.ID
	medico.Nombre = user.Nombre
	medico.Apellido = user.Apellido
	medico.Rut = user.Rut
	r.f.medicos[medico.ID] = medico
	return nil
}

func (r *fakeMedicoRepo) Get(_ context.Context, id uuid.UUID) (*model.Medico, error) {
	if m, ok := r.f.medicos[id]; ok {
		return m, nil
	}
	return nil, apperrors.NotFound("medico", nil)
}

func (r *fakeMedicoRepo) GetByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Medico, error) {
	for _, m := range r.f.medicos {
		if m.UsuarioID == usuarioID {
			return m, nil
		}
	}
	return nil, apperrors.NotFound("medico", nil)
}

func (r *fakeMedicoRepo) Update(_ context.Context, user *model.Usuario, medico *model.Medico) error {
	r.f.usuarios[user.ID] = user
	r.f.medicos[medico.ID] = medico
	return nil
}

func (r *fakeMedicoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.f.medicos[id]; !ok {
		return apperrors.NotFound("medico", nil)
	}
	delete(r.f.medicos, id)
	return nil
}

func (r *fakeMedicoRepo) List(_ context.Context) ([]*model.Medico, error) {
	var out []*model.Medico
	for _, m := range r.f.medicos {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMedicoRepo) ListByEspecialidad(_ context.Context, especialidadID uuid.UUID) ([]*model.Medico, error) {
	var out []*model.Medico
	for _, m := range r.f.medicos {
		if m.EspecialidadID == especialidadID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMedicoRepo) Count(_ context.Context) (int, error) {
	return len(r.f.medicos), nil
}

type fakeEspecialidadRepo struct{ f *fakeStaff }

func (r *fakeEspecialidadRepo) Create(_ context.Context, esp *model.Especialidad) error {
	esp.ID = uuid.New()
	r.f.esps[esp.ID] = esp
	return nil
}

func (r *fakeEspecialidadRepo) Get(_ context.Context, id uuid.UUID) (*model.Especialidad, error) {
	if esp, ok := r.f.esps[id]; ok {
		return esp, nil
	}
	return nil, apperrors.NotFound("especialidad", nil)
}

func (r *fakeEspecialidadRepo) List(_ context.Context) ([]*model.Especialidad, error) {
	var out []*model.Especialidad
	for _, esp := range r.f.esps {
		out = append(out, esp)
	}
	return out, nil
}

func newTestService(f *fakeStaff) *Service {
	return NewService(&fakeMedicoRepo{f}, &fakeUsuarioRepo{f}, &fakeEspecialidadRepo{f})
}

func TestCreateMedico(t *testing.T) {
	f := newFakeStaff()
	esp := f.addEspecialidad("Cardiología")
	svc := newTestService(f)

	medico, err := svc.Create(context.Background(), &model.CreateMedicoRequest{
		Rut:            "12345678-9",
		Nombre:         "Laura",
		Apellido:       "Pérez",
		Password:       "clave-segura",
		EspecialidadID: esp.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678-9", medico.Rut)
	assert.Equal(t, esp.ID, medico.EspecialidadID)

	user := f.usuarios[medico.UsuarioID]
	require.NotNil(t, user)
	assert.Equal(t, model.RoleMedico, user.Role)
	assert.True(t, user.Activo)
}

func TestCreateMedicoRutDuplicado(t *testing.T) {
	f := newFakeStaff()
	esp := f.addEspecialidad("Cardiología")
	svc := newTestService(f)

	_, err := svc.Create(context.Background(), &model.CreateMedicoRequest{
		Rut:            "12345678-9",
		Nombre:         "Laura",
		Apellido:       "Pérez",
		Password:       "clave-segura",
		EspecialidadID: esp.ID,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &model.CreateMedicoRequest{
		Rut:            "12345678-9",
		Nombre:         "Otro",
		Apellido:       "Nombre",
		Password:       "clave-segura",
		EspecialidadID: esp.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Len(t, f.medicos, 1)
}

func TestCreateMedicoRutInvalido(t *testing.T) {
	f := newFakeStaff()
	esp := f.addEspecialidad("Cardiología")
	svc := newTestService(f)

	_, err := svc.Create(context.Background(), &model.CreateMedicoRequest{
		Rut:            "no-es-rut",
		Nombre:         "Laura",
		Apellido:       "Pérez",
		Password:       "clave-segura",
		EspecialidadID: esp.ID,
	})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}
