package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
)

func (r *especialidadRepository) Create(ctx context.Context, esp *model.Especialidad) error {
	query := `
		INSERT INTO especialidades (id, nombre, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	esp.ID = uuid.New()
	esp.CreatedAt = time.Now()
	esp.UpdatedAt = esp.CreatedAt

	_, err := r.GetDB().ExecContext(ctx, query, esp.ID, esp.Nombre, esp.CreatedAt, esp.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Validation("la especialidad ya existe", err)
		}
		return fmt.Errorf("failed to create especialidad: %w", err)
	}
	return nil
}

func (r *especialidadRepository) Get(ctx context.Context, id uuid.UUID) (*model.Especialidad, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM especialidades WHERE id = $1`

	var esp model.Especialidad
	if err := r.GetDB().GetContext(ctx, &esp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("especialidad", err)
		}
		return nil, fmt.Errorf("failed to get especialidad: %w", err)
	}
	return &esp, nil
}

func (r *especialidadRepository) List(ctx context.Context) ([]*model.Especialidad, error) {
	query := `SELECT id, nombre, created_at, updated_at FROM especialidades ORDER BY nombre`

	var esps []*model.Especialidad
	if err := r.GetDB().SelectContext(ctx, &esps, query); err != nil {
		return nil, fmt.Errorf("failed to list especialidades: %w", err)
	}
	return esps, nil
}
