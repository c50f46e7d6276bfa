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

func (r *pacienteRepository) Create(ctx context.Context, paciente *model.Paciente) error {
	query := `
		INSERT INTO pacientes (
			id, rut, nombre, fecha_nacimiento, direccion, telefono, email,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	paciente.ID = uuid.New()
	paciente.CreatedAt = time.Now()
	paciente.UpdatedAt = paciente.CreatedAt

	_, err := r.GetDB().ExecContext(ctx, query,
		paciente.ID,
		paciente.Rut,
		paciente.Nombre,
		paciente.FechaNacimiento,
		paciente.Direccion,
		paciente.Telefono,
		paciente.Email,
		paciente.CreatedAt,
		paciente.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Validation("el RUT ingresado ya está registrado", err)
		}
		return fmt.Errorf("failed to create paciente: %w", err)
	}
	return nil
}

func (r *pacienteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	query := `
		SELECT id, rut, nombre, fecha_nacimiento, direccion, telefono, email,
			   created_at, updated_at
		FROM pacientes
		WHERE id = $1
	`
	var paciente model.Paciente
	if err := r.GetDB().GetContext(ctx, &paciente, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("paciente", err)
		}
		return nil, fmt.Errorf("failed to get paciente: %w", err)
	}
	return &paciente, nil
}

func (r *pacienteRepository) GetByRut(ctx context.Context, rut string) (*model.Paciente, error) {
	query := `
		SELECT id, rut, nombre, fecha_nacimiento, direccion, telefono, email,
			   created_at, updated_at
		FROM pacientes
		WHERE rut = $1
	`
	var paciente model.Paciente
	if err := r.GetDB().GetContext(ctx, &paciente, query, rut); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("paciente", err)
		}
		return nil, fmt.Errorf("failed to get paciente by rut: %w", err)
	}
	return &paciente, nil
}

func (r *pacienteRepository) Update(ctx context.Context, paciente *model.Paciente) error {
	query := `
		UPDATE pacientes
		SET nombre = $1, fecha_nacimiento = $2, direccion = $3,
			telefono = $4, email = $5, updated_at = $6
		WHERE id = $7
	`
	paciente.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		paciente.Nombre,
		paciente.FechaNacimiento,
		paciente.Direccion,
		paciente.Telefono,
		paciente.Email,
		paciente.UpdatedAt,
		paciente.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update paciente: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("paciente", nil)
	}
	return nil
}

func (r *pacienteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.GetDB().ExecContext(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete paciente: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("paciente", nil)
	}
	return nil
}

func (r *pacienteRepository) List(ctx context.Context, filter *model.PacienteFilter) ([]*model.Paciente, int, error) {
	where := ""
	args := []interface{}{}

	if filter.Rut != "" {
		where = " WHERE rut ILIKE $1"
		args = append(args, "%"+filter.Rut+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM pacientes` + where
	if err := r.GetDB().GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count pacientes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, rut, nombre, fecha_nacimiento, direccion, telefono, email,
			   created_at, updated_at
		FROM pacientes%s
		ORDER BY nombre
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	var pacientes []*model.Paciente
	if err := r.GetDB().SelectContext(ctx, &pacientes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list pacientes: %w", err)
	}
	return pacientes, total, nil
}

func (r *pacienteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.GetDB().GetContext(ctx, &count, `SELECT COUNT(*) FROM pacientes`); err != nil {
		return 0, fmt.Errorf("failed to count pacientes: %w", err)
	}
	return count, nil
}
