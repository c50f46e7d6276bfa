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

const medicoColumns = `
	m.id, m.usuario_id, m.especialidad_id, m.telefono,
	m.created_at, m.updated_at,
	u.nombre, u.apellido, u.rut,
	e.nombre AS especialidad
`

// Create inserts the usuario account and the medico row in one
// transaction; a staff member never exists without its account.
func (r *medicoRepository) Create(ctx context.Context, user *model.Usuario, medico *model.Medico) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		user.ID = uuid.New()
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt

		_, err := tx.ExecContext(ctx, `
			INSERT INTO usuarios (
				id, rut, nombre, apellido, password_hash, role,
				superuser, activo, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			user.ID, user.Rut, user.Nombre, user.Apellido, user.PasswordHash,
			model.RoleMedico, false, true, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if IsUniqueViolation(err) {
				return apperrors.Validation("el RUT ingresado ya está registrado", err)
			}
			return fmt.Errorf("failed to create usuario: %w", err)
		}

		medico.ID = uuid.New()
		medico.UsuarioID = user.ID
		medico.CreatedAt = user.CreatedAt
		medico.UpdatedAt = user.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO medicos (
				id, usuario_id, especialidad_id, telefono, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`,
			medico.ID, medico.UsuarioID, medico.EspecialidadID,
			medico.Telefono, medico.CreatedAt, medico.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create medico: %w", err)
		}
		return nil
	})
}

func (r *medicoRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medico, error) {
	query := `
		SELECT ` + medicoColumns + `
		FROM medicos m
		JOIN usuarios u ON u.id = m.usuario_id
		JOIN especialidades e ON e.id = m.especialidad_id
		WHERE m.id = $1
	`
	var medico model.Medico
	if err := r.GetDB().GetContext(ctx, &medico, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medico", err)
		}
		return nil, fmt.Errorf("failed to get medico: %w", err)
	}
	return &medico, nil
}

func (r *medicoRepository) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Medico, error) {
	query := `
		SELECT ` + medicoColumns + `
		FROM medicos m
		JOIN usuarios u ON u.id = m.usuario_id
		JOIN especialidades e ON e.id = m.especialidad_id
		WHERE m.usuario_id = $1
	`
	var medico model.Medico
	if err := r.GetDB().GetContext(ctx, &medico, query, usuarioID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medico", err)
		}
		return nil, fmt.Errorf("failed to get medico by usuario: %w", err)
	}
	return &medico, nil
}

func (r *medicoRepository) Update(ctx context.Context, user *model.Usuario, medico *model.Medico) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		user.UpdatedAt = time.Now()
		_, err := tx.ExecContext(ctx, `
			UPDATE usuarios
			SET nombre = $1, apellido = $2, password_hash = $3, updated_at = $4
			WHERE id = $5
		`,
			user.Nombre, user.Apellido, user.PasswordHash, user.UpdatedAt, user.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update usuario: %w", err)
		}

		medico.UpdatedAt = user.UpdatedAt
		result, err := tx.ExecContext(ctx, `
			UPDATE medicos
			SET especialidad_id = $1, telefono = $2, updated_at = $3
			WHERE id = $4
		`,
			medico.EspecialidadID, medico.Telefono, medico.UpdatedAt, medico.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update medico: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("medico", nil)
		}
		return nil
	})
}

// Delete removes the medico and its usuario account together, matching
// the admin flow's explicit double deletion.
func (r *medicoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var usuarioID uuid.UUID
		err := tx.GetContext(ctx, &usuarioID, `SELECT usuario_id FROM medicos WHERE id = $1`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("medico", err)
			}
			return fmt.Errorf("failed to get medico: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM medicos WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete medico: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, usuarioID); err != nil {
			return fmt.Errorf("failed to delete usuario: %w", err)
		}
		return nil
	})
}

func (r *medicoRepository) List(ctx context.Context) ([]*model.Medico, error) {
	query := `
		SELECT ` + medicoColumns + `
		FROM medicos m
		JOIN usuarios u ON u.id = m.usuario_id
		JOIN especialidades e ON e.id = m.especialidad_id
		ORDER BY u.apellido, u.nombre
	`
	var medicos []*model.Medico
	if err := r.GetDB().SelectContext(ctx, &medicos, query); err != nil {
		return nil, fmt.Errorf("failed to list medicos: %w", err)
	}
	return medicos, nil
}

func (r *medicoRepository) ListByEspecialidad(ctx context.Context, especialidadID uuid.UUID) ([]*model.Medico, error) {
	query := `
		SELECT ` + medicoColumns + `
		FROM medicos m
		JOIN usuarios u ON u.id = m.usuario_id
		JOIN especialidades e ON e.id = m.especialidad_id
		WHERE m.especialidad_id = $1
		ORDER BY u.apellido, u.nombre
	`
	var medicos []*model.Medico
	if err := r.GetDB().SelectContext(ctx, &medicos, query, especialidadID); err != nil {
		return nil, fmt.Errorf("failed to list medicos by especialidad: %w", err)
	}
	return medicos, nil
}

func (r *medicoRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM medicos`); err != nil {
		return 0, fmt.Errorf("failed to count medicos: %w", err)
	}
	return count, nil
}
