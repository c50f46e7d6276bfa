package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicaustral/clinica-api/internal/model"
	disponibilidadService "github.com/clinicaustral/clinica-api/internal/service/disponibilidad"
	medicoService "github.com/clinicaustral/clinica-api/internal/service/medico"
	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMedicoRepo struct {
	medicos map[uuid.UUID]*model.Medico
}

func (r *fakeMedicoRepo) Create(_ context.Context, _ *model.Usuario, m *model.Medico) error {
	m.ID = uuid.New()
	r.medicos[m.ID] = m
	return nil
}

func (r *fakeMedicoRepo) Get(_ context.Context, id uuid.UUID) (*model.Medico, error) {
	if m, ok := r.medicos[id]; ok {
		return m, nil
	}
	return nil, apperrors.NotFound("medico", nil)
}

func (r *fakeMedicoRepo) GetByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.Medico, error) {
	for _, m := range r.medicos {
		if m.UsuarioID == usuarioID {
			return m, nil
		}
	}
	return nil, apperrors.NotFound("medico", nil)
}

func (r *fakeMedicoRepo) Update(_ context.Context, _ *model.Usuario, _ *model.Medico) error {
	return nil
}
func (r *fakeMedicoRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeMedicoRepo) List(_ context.Context) ([]*model.Medico, error) {
	out := make([]*model.Medico, 0, len(r.medicos))
	for _, m := range r.medicos {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMedicoRepo) ListByEspecialidad(_ context.Context, especialidadID uuid.UUID) ([]*model.Medico, error) {
	var out []*model.Medico
	for _, m := range r.medicos {
		if m.EspecialidadID == especialidadID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMedicoRepo) Count(_ context.Context) (int, error) { return len(r.medicos), nil }

type fakeDispRepo struct {
	slots map[uuid.UUID]*model.Disponibilidad
}

func (r *fakeDispRepo) Create(_ context.Context, d *model.Disponibilidad) error {
	d.ID = uuid.New()
	r.slots[d.ID] = d
	return nil
}

func (r *fakeDispRepo) Get(_ context.Context, id uuid.UUID) (*model.Disponibilidad, error) {
	if d, ok := r.slots[id]; ok {
		return d, nil
	}
	return nil, apperrors.NotFound("disponibilidad", nil)
}

func (r *fakeDispRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeDispRepo) ListByMedico(_ context.Context, _ uuid.UUID) ([]*model.Disponibilidad, error) {
	return nil, nil
}

func (r *fakeDispRepo) ListLibres(_ context.Context, medicoID uuid.UUID, desde time.Time) ([]*model.Disponibilidad, error) {
	var out []*model.Disponibilidad
	for _, d := range r.slots {
		if d.MedicoID == medicoID && !d.Ocupada && d.FechaDisponible.After(desde) {
			out = append(out, d)
		}
	}
	return out, nil
}

func newTestRouter(medicoRepo *fakeMedicoRepo, dispRepo *fakeDispRepo) *gin.Engine {
	medicoSvc := medicoService.NewService(medicoRepo, nil, nil)
	dispSvc := disponibilidadService.NewService(dispRepo)
	h := NewHandler(medicoSvc, dispSvc)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func addMedico(repo *fakeMedicoRepo, especialidadID uuid.UUID) *model.Medico {
	m := &model.Medico{
		UsuarioID:      uuid.New(),
		EspecialidadID: especialidadID,
	}
	m.ID = uuid.New()
	repo.medicos[m.ID] = m
	return m
}

func TestListMedicosPorEspecialidad(t *testing.T) {
	medicoRepo := &fakeMedicoRepo{medicos: make(map[uuid.UUID]*model.Medico)}
	dispRepo := &fakeDispRepo{slots: make(map[uuid.UUID]*model.Disponibilidad)}

	cardiologia := uuid.New()
	buscado := addMedico(medicoRepo, cardiologia)
	addMedico(medicoRepo, uuid.New())

	r := newTestRouter(medicoRepo, dispRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/medicos?especialidad_id="+cardiologia.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string         `json:"status"`
		Data   []model.Medico `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, buscado.ID, resp.Data[0].ID)
}

func TestListMedicosEspecialidadInvalida(t *testing.T) {
	r := newTestRouter(
		&fakeMedicoRepo{medicos: make(map[uuid.UUID]*model.Medico)},
		&fakeDispRepo{slots: make(map[uuid.UUID]*model.Disponibilidad)},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/medicos?especialidad_id=no-es-uuid", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDisponibilidadesSinMedico(t *testing.T) {
	r := newTestRouter(
		&fakeMedicoRepo{medicos: make(map[uuid.UUID]*model.Medico)},
		&fakeDispRepo{slots: make(map[uuid.UUID]*model.Disponibilidad)},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/disponibilidades", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDisponibilidadesLibres(t *testing.T) {
	medicoRepo := &fakeMedicoRepo{medicos: make(map[uuid.UUID]*model.Medico)}
	dispRepo := &fakeDispRepo{slots: make(map[uuid.UUID]*model.Disponibilidad)}

	medicoID := uuid.New()
	fecha := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	libre := &model.Disponibilidad{MedicoID: medicoID, FechaDisponible: fecha}
	libre.ID = uuid.New()
	dispRepo.slots[libre.ID] = libre

	ocupada := &model.Disponibilidad{MedicoID: medicoID, FechaDisponible: fecha.Add(time.Hour), Ocupada: true}
	ocupada.ID = uuid.New()
	dispRepo.slots[ocupada.ID] = ocupada

	r := newTestRouter(medicoRepo, dispRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/disponibilidades?medico_id="+medicoID.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID        uuid.UUID `json:"id"`
			FechaHora string    `json:"fecha_hora"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, libre.ID, resp.Data[0].ID)
	assert.Equal(t, fecha.Local().Format("02/01/2006 15:04"), resp.Data[0].FechaHora)
}
