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

func (r *usuarioRepository) Create(ctx context.Context, user *model.Usuario) error {
	query := `
		INSERT INTO usuarios (
			id, rut, nombre, apellido, password_hash, role,
			superuser, activo, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.GetDB().ExecContext(ctx, query,
		user.ID,
		user.Rut,
		user.Nombre,
		user.Apellido,
		user.PasswordHash,
		user.Role,
		user.Superuser,
		user.Activo,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Validation("el RUT ingresado ya está registrado", err)
		}
		return fmt.Errorf("failed to create usuario: %w", err)
	}
	return nil
}

func (r *usuarioRepository) Get(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	query := `
		SELECT id, rut, nombre, apellido, password_hash, role, superuser,
			   activo, failed_login_attempts, last_login_attempt,
			   last_login_at, created_at, updated_at
		FROM usuarios
		WHERE id = $1
	`
	var user model.Usuario
	if err := r.GetDB().GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("usuario", err)
		}
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}
	return &user, nil
}

func (r *usuarioRepository) GetByRut(ctx context.Context, rut string) (*model.Usuario, error) {
	query := `
		SELECT id, rut, nombre, apellido, password_hash, role, superuser,
			   activo, failed_login_attempts, last_login_attempt,
			   last_login_at, created_at, updated_at
		FROM usuarios
		WHERE rut = $1
	`
	var user model.Usuario
	if err := r.GetDB().GetContext(ctx, &user, query, rut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("usuario", err)
		}
		return nil, fmt.Errorf("failed to get usuario by rut: %w", err)
	}
	return &user, nil
}

func (r *usuarioRepository) Update(ctx context.Context, user *model.Usuario) error {
	query := `
		UPDATE usuarios
		SET rut = $1, nombre = $2, apellido = $3, password_hash = $4,
			activo = $5, failed_login_attempts = $6, last_login_attempt = $7,
			last_login_at = $8, updated_at = $9
		WHERE id = $10
	`
	user.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		user.Rut,
		user.Nombre,
		user.Apellido,
		user.PasswordHash,
		user.Activo,
		user.FailedLoginAttempts,
		user.LastLoginAttempt,
		user.LastLoginAt,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Validation("el RUT ingresado ya está registrado", err)
		}
		return fmt.Errorf("failed to update usuario: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("usuario", nil)
	}
	return nil
}

func (r *usuarioRepository) ExistsRut(ctx context.Context, rut string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM usuarios WHERE rut = $1`
	args := []interface{}{rut}

	if excludeID != nil {
		query += " AND id != $2"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.GetDB().GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check rut existence: %w", err)
	}
	return exists, nil
}
