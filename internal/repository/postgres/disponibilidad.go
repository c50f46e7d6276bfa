package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
)

func (r *disponibilidadRepository) Create(ctx context.Context, disp *model.Disponibilidad) error {
	query := `
		INSERT INTO disponibilidades (
			id, medico_id, fecha_disponible, ocupada, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	disp.ID = uuid.New()
	disp.Ocupada = false
	disp.CreatedAt = time.Now()
	disp.UpdatedAt = disp.CreatedAt

	_, err := r.GetDB().ExecContext(ctx, query,
		disp.ID,
		disp.MedicoID,
		disp.FechaDisponible,
		disp.Ocupada,
		disp.CreatedAt,
		disp.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Validation("ya existe una disponibilidad en ese horario", err)
		}
		return fmt.Errorf("failed to create disponibilidad: %w", err)
	}
	return nil
}

func (r *disponibilidadRepository) Get(ctx context.Context, id uuid.UUID) (*model.Disponibilidad, error) {
	query := `
		SELECT id, medico_id, fecha_disponible, ocupada, created_at, updated_at
		FROM disponibilidades
		WHERE id = $1
	`
	var disp model.Disponibilidad
	if err := r.GetDB().GetContext(ctx, &disp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("disponibilidad", err)
		}
		return nil, fmt.Errorf("failed to get disponibilidad: %w", err)
	}
	return &disp, nil
}

// Delete refuses to remove a claimed slot; a reservation still points at
// it and would be orphaned.
func (r *disponibilidadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.GetDB().ExecContext(ctx,
		`DELETE FROM disponibilidades WHERE id = $1 AND ocupada = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete disponibilidad: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var ocupada bool
		err := r.GetDB().GetContext(ctx, &ocupada,
			`SELECT ocupada FROM disponibilidades WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("disponibilidad", err)
		}
		if err != nil {
			return fmt.Errorf("failed to check disponibilidad: %w", err)
		}
		return apperrors.Conflict("la disponibilidad tiene una reserva activa", nil)
	}
	return nil
}

func (r *disponibilidadRepository) ListByMedico(ctx context.Context, medicoID uuid.UUID) ([]*model.Disponibilidad, error) {
	query := `
		SELECT id, medico_id, fecha_disponible, ocupada, created_at, updated_at
		FROM disponibilidades
		WHERE medico_id = $1
		ORDER BY fecha_disponible
	`
	var disps []*model.Disponibilidad
	if err := r.GetDB().SelectContext(ctx, &disps, query, medicoID); err != nil {
		return nil, fmt.Errorf("failed to list disponibilidades: %w", err)
	}
	return disps, nil
}

func (r *disponibilidadRepository) ListLibres(ctx context.Context, medicoID uuid.UUID, desde time.Time) ([]*model.Disponibilidad, error) {
	query := `
		SELECT id, medico_id, fecha_disponible, ocupada, created_at, updated_at
		FROM disponibilidades
		WHERE medico_id = $1 AND ocupada = FALSE AND fecha_disponible >= $2
		ORDER BY fecha_disponible
	`
	var disps []*model.Disponibilidad
	if err := r.GetDB().SelectContext(ctx, &disps, query, medicoID, desde); err != nil {
		return nil, fmt.Errorf("failed to list free disponibilidades: %w", err)
	}
	return disps, nil
}

// claimSlot flips a slot to occupied only if it is still free and owned
// by the expected medico. Zero rows affected means someone else claimed
// it first, it does not exist, or it belongs to another medico; all
// three surface as a conflict.
func claimSlot(ctx context.Context, tx *sqlx.Tx, slotID, medicoID uuid.UUID) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE disponibilidades
		SET ocupada = TRUE, updated_at = $1
		WHERE id = $2 AND medico_id = $3 AND ocupada = FALSE
	`, time.Now(), slotID, medicoID)
	if err != nil {
		return fmt.Errorf("failed to claim disponibilidad: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.Conflict("la hora seleccionada ya no está disponible", nil)
	}
	return nil
}

func releaseSlot(ctx context.Context, tx *sqlx.Tx, slotID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE disponibilidades
		SET ocupada = FALSE, updated_at = $1
		WHERE id = $2
	`, time.Now(), slotID)
	if err != nil {
		return fmt.Errorf("failed to release disponibilidad: %w", err)
	}
	return nil
}
