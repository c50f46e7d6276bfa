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

const fichaColumns = `
	f.id, f.paciente_id, f.medico_id, f.reserva_id,
	f.diagnostico, f.tratamiento, f.observaciones,
	f.created_at, f.updated_at,
	p.nombre AS paciente_nombre, p.rut AS paciente_rut
`

func (r *fichaMedicaRepository) Create(ctx context.Context, ficha *model.FichaMedica) error {
	query := `
		INSERT INTO fichas_medicas (
			id, paciente_id, medico_id, reserva_id,
			diagnostico, tratamiento, observaciones,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	ficha.ID = uuid.New()
	ficha.CreatedAt = time.Now()
	ficha.UpdatedAt = ficha.CreatedAt

	_, err := r.GetDB().ExecContext(ctx, query,
		ficha.ID,
		ficha.PacienteID,
		ficha.MedicoID,
		ficha.ReservaID,
		ficha.Diagnostico,
		ficha.Tratamiento,
		ficha.Observaciones,
		ficha.CreatedAt,
		ficha.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ficha medica: %w", err)
	}
	return nil
}

func (r *fichaMedicaRepository) Get(ctx context.Context, id uuid.UUID) (*model.FichaMedica, error) {
	query := `
		SELECT ` + fichaColumns + `
		FROM fichas_medicas f
		JOIN pacientes p ON p.id = f.paciente_id
		WHERE f.id = $1
	`
	var ficha model.FichaMedica
	if err := r.GetDB().GetContext(ctx, &ficha, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("ficha medica", err)
		}
		return nil, fmt.Errorf("failed to get ficha medica: %w", err)
	}
	return &ficha, nil
}

func (r *fichaMedicaRepository) Update(ctx context.Context, ficha *model.FichaMedica) error {
	query := `
		UPDATE fichas_medicas
		SET diagnostico = $1, tratamiento = $2, observaciones = $3, updated_at = $4
		WHERE id = $5
	`
	ficha.UpdatedAt = time.Now()

	result, err := r.GetDB().ExecContext(ctx, query,
		ficha.Diagnostico,
		ficha.Tratamiento,
		ficha.Observaciones,
		ficha.UpdatedAt,
		ficha.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ficha medica: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("ficha medica", nil)
	}
	return nil
}

func (r *fichaMedicaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.GetDB().ExecContext(ctx, `DELETE FROM fichas_medicas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ficha medica: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("ficha medica", nil)
	}
	return nil
}

func (r *fichaMedicaRepository) List(ctx context.Context, filter *model.FichaFilter) ([]*model.FichaMedica, int, error) {
	where := ""
	args := []interface{}{}

	if filter.Rut != "" {
		args = append(args, "%"+filter.Rut+"%")
		where += fmt.Sprintf(" AND p.rut ILIKE $%d", len(args))
	}
	if filter.Fecha != "" {
		args = append(args, filter.Fecha)
		where += fmt.Sprintf(" AND f.created_at::date = $%d", len(args))
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM fichas_medicas f
		JOIN pacientes p ON p.id = f.paciente_id
		WHERE 1=1` + where
	if err := r.GetDB().GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count fichas: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+fichaColumns+`
		FROM fichas_medicas f
		JOIN pacientes p ON p.id = f.paciente_id
		WHERE 1=1%s
		ORDER BY f.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	var fichas []*model.FichaMedica
	if err := r.GetDB().SelectContext(ctx, &fichas, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list fichas: %w", err)
	}
	return fichas, total, nil
}

func (r *fichaMedicaRepository) ListByPacienteRut(ctx context.Context, rut string) ([]*model.FichaMedica, error) {
	query := `
		SELECT ` + fichaColumns + `
		FROM fichas_medicas f
		JOIN pacientes p ON p.id = f.paciente_id
		WHERE p.rut = $1
		ORDER BY f.created_at DESC
	`
	var fichas []*model.FichaMedica
	if err := r.GetDB().SelectContext(ctx, &fichas, query, rut); err != nil {
		return nil, fmt.Errorf("failed to list fichas by paciente: %w", err)
	}
	return fichas, nil
}
