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

const reservaColumns = `
	r.id, r.paciente_id, r.medico_id, r.especialidad_id,
	r.disponibilidad_id, r.motivo, r.created_at, r.updated_at,
	p.nombre AS paciente_nombre, p.rut AS paciente_rut,
	d.fecha_disponible
`

// CreateClaiming claims the slot and inserts the reserva in one
// transaction. Two concurrent creates against the same slot serialize on
// the conditional UPDATE; the loser gets a conflict and nothing is
// written.
func (r *reservaRepository) CreateClaiming(ctx context.Context, reserva *model.Reserva) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := claimSlot(ctx, tx, reserva.DisponibilidadID, reserva.MedicoID); err != nil {
			return err
		}

		reserva.ID = uuid.New()
		reserva.CreatedAt = time.Now()
		reserva.UpdatedAt = reserva.CreatedAt

		_, err := tx.ExecContext(ctx, `
			INSERT INTO reservas (
				id, paciente_id, medico_id, especialidad_id,
				disponibilidad_id, motivo, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			reserva.ID,
			reserva.PacienteID,
			reserva.MedicoID,
			reserva.EspecialidadID,
			reserva.DisponibilidadID,
			reserva.Motivo,
			reserva.CreatedAt,
			reserva.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create reserva: %w", err)
		}
		return nil
	})
}

func (r *reservaRepository) Get(ctx context.Context, id uuid.UUID) (*model.Reserva, error) {
	query := `
		SELECT ` + reservaColumns + `
		FROM reservas r
		JOIN pacientes p ON p.id = r.paciente_id
		JOIN disponibilidades d ON d.id = r.disponibilidad_id
		WHERE r.id = $1
	`
	var reserva model.Reserva
	if err := r.GetDB().GetContext(ctx, &reserva, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("reserva", err)
		}
		return nil, fmt.Errorf("failed to get reserva: %w", err)
	}
	return &reserva, nil
}

// Update rewrites the mutable fields of a reserva that stays on its
// current slot. Slot moves go through UpdateRebinding.
func (r *reservaRepository) Update(ctx context.Context, reserva *model.Reserva) error {
	reserva.UpdatedAt = time.Now()
	result, err := r.GetDB().ExecContext(ctx, `
		UPDATE reservas
		SET especialidad_id = $1, motivo = $2, updated_at = $3
		WHERE id = $4
	`,
		reserva.EspecialidadID,
		reserva.Motivo,
		reserva.UpdatedAt,
		reserva.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reserva: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("reserva", nil)
	}
	return nil
}

// UpdateRebinding moves the reserva from oldSlotID to its new slot:
// release old, claim new, rewrite the row. All-or-nothing; a failed
// claim rolls the release back and the old slot stays occupied.
func (r *reservaRepository) UpdateRebinding(ctx context.Context, reserva *model.Reserva, oldSlotID uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := releaseSlot(ctx, tx, oldSlotID); err != nil {
			return err
		}
		if err := claimSlot(ctx, tx, reserva.DisponibilidadID, reserva.MedicoID); err != nil {
			return err
		}

		reserva.UpdatedAt = time.Now()
		result, err := tx.ExecContext(ctx, `
			UPDATE reservas
			SET medico_id = $1, especialidad_id = $2, disponibilidad_id = $3,
				motivo = $4, updated_at = $5
			WHERE id = $6
		`,
			reserva.MedicoID,
			reserva.EspecialidadID,
			reserva.DisponibilidadID,
			reserva.Motivo,
			reserva.UpdatedAt,
			reserva.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update reserva: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("reserva", nil)
		}
		return nil
	})
}

// DeleteReleasing frees the slot and removes the reserva atomically.
func (r *reservaRepository) DeleteReleasing(ctx context.Context, reserva *model.Reserva) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := releaseSlot(ctx, tx, reserva.DisponibilidadID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM reservas WHERE id = $1`, reserva.ID)
		if err != nil {
			return fmt.Errorf("failed to delete reserva: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("reserva", nil)
		}
		return nil
	})
}

func (r *reservaRepository) List(ctx context.Context, filter *model.ReservaFilter) ([]*model.Reserva, int, error) {
	where := ""
	args := []interface{}{}

	if filter.FechaInicio != nil && filter.FechaFin != nil {
		where = " WHERE d.fecha_disponible BETWEEN $1 AND $2"
		// Range is inclusive of the whole end day.
		args = append(args, *filter.FechaInicio, filter.FechaFin.Add(24*time.Hour))
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM reservas r
		JOIN disponibilidades d ON d.id = r.disponibilidad_id` + where
	if err := r.GetDB().GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count reservas: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+reservaColumns+`
		FROM reservas r
		JOIN pacientes p ON p.id = r.paciente_id
		JOIN disponibilidades d ON d.id = r.disponibilidad_id%s
		ORDER BY d.fecha_disponible DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	var reservas []*model.Reserva
	if err := r.GetDB().SelectContext(ctx, &reservas, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list reservas: %w", err)
	}
	return reservas, total, nil
}

// ListHoyByMedico returns the medico's reservations for the rest of
// today, ordered by slot time; the dashboard agenda.
func (r *reservaRepository) ListHoyByMedico(ctx context.Context, medicoID uuid.UUID, ahora time.Time) ([]*model.Reserva, error) {
	finDia := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location()).Add(24 * time.Hour)

	query := `
		SELECT ` + reservaColumns + `
		FROM reservas r
		JOIN pacientes p ON p.id = r.paciente_id
		JOIN disponibilidades d ON d.id = r.disponibilidad_id
		WHERE r.medico_id = $1
		AND d.fecha_disponible >= $2
		AND d.fecha_disponible < $3
		ORDER BY d.fecha_disponible
	`
	var reservas []*model.Reserva
	if err := r.GetDB().SelectContext(ctx, &reservas, query, medicoID, ahora, finDia); err != nil {
		return nil, fmt.Errorf("failed to list today's reservas: %w", err)
	}
	return reservas, nil
}

func (r *reservaRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM reservas`); err != nil {
		return 0, fmt.Errorf("failed to count reservas: %w", err)
	}
	return count, nil
}
