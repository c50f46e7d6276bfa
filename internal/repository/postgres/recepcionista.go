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

const recepcionistaColumns = `
	r.id, r.usuario_id, r.telefono, r.direccion, r.fecha_contratacion,
	r.created_at, r.updated_at,
	u.nombre, u.apellido, u.rut
`

func (r *recepcionistaRepository) Create(ctx context.Context, user *model.Usuario, rec *model.Recepcionista) error {
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
			model.RoleRecepcionista, false, true, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if IsUniqueViolation(err) {
				return apperrors.Validation("el RUT ingresado ya está registrado", err)
			}
			return fmt.Errorf("failed to create usuario: %w", err)
		}

		rec.ID = uuid.New()
		rec.UsuarioID = user.ID
		rec.CreatedAt = user.CreatedAt
		rec.UpdatedAt = user.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO recepcionistas (
				id, usuario_id, telefono, direccion, fecha_contratacion,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			rec.ID, rec.UsuarioID, rec.Telefono, rec.Direccion,
			rec.FechaContratacion, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create recepcionista: %w", err)
		}
		return nil
	})
}

func (r *recepcionistaRepository) Get(ctx context.Context, id uuid.UUID) (*model.Recepcionista, error) {
	query := `
		SELECT ` + recepcionistaColumns + `
		FROM recepcionistas r
		JOIN usuarios u ON u.id = r.usuario_id
		WHERE r.id = $1
	`
	var rec model.Recepcionista
	if err := r.GetDB().GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("recepcionista", err)
		}
		return nil, fmt.Errorf("failed to get recepcionista: %w", err)
	}
	return &rec, nil
}

func (r *recepcionistaRepository) Update(ctx context.Context, user *model.Usuario, rec *model.Recepcionista) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		user.UpdatedAt = time.Now()
		_, err := tx.ExecContext(ctx, `
			UPDATE usuarios
			SET nombre = $1, apellido = $2, updated_at = $3
			WHERE id = $4
		`,
			user.Nombre, user.Apellido, user.UpdatedAt, user.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update usuario: %w", err)
		}

		rec.UpdatedAt = user.UpdatedAt
		result, err := tx.ExecContext(ctx, `
			UPDATE recepcionistas
			SET telefono = $1, direccion = $2, updated_at = $3
			WHERE id = $4
		`,
			rec.Telefono, rec.Direccion, rec.UpdatedAt, rec.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update recepcionista: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("recepcionista", nil)
		}
		return nil
	})
}

func (r *recepcionistaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var usuarioID uuid.UUID
		err := tx.GetContext(ctx, &usuarioID, `SELECT usuario_id FROM recepcionistas WHERE id = $1`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("recepcionista", err)
			}
			return fmt.Errorf("failed to get recepcionista: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recepcionistas WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete recepcionista: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, usuarioID); err != nil {
			return fmt.Errorf("failed to delete usuario: %w", err)
		}
		return nil
	})
}

func (r *recepcionistaRepository) List(ctx context.Context) ([]*model.Recepcionista, error) {
	query := `
		SELECT ` + recepcionistaColumns + `
		FROM recepcionistas r
		JOIN usuarios u ON u.id = r.usuario_id
		ORDER BY u.apellido, u.nombre
	`
	var recs []*model.Recepcionista
	if err := r.GetDB().SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("failed to list recepcionistas: %w", err)
	}
	return recs, nil
}

func (r *recepcionistaRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM recepcionistas`); err != nil {
		return 0, fmt.Errorf("failed to count recepcionistas: %w", err)
	}
	return count, nil
}
