package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
)

func (r *fichaRepository) Create(ctx context.Context, ficha *model.Ficha) error {
	query := `
		INSERT INTO fichas_podologicas (
			id, patient_id, appointment_id, fecha, motivo_consulta,
			diabetes, hipertension, hipotiroidismo, hipertiroidismo,
			tiempo_enfermedad, medicacion, alergias, cirugias_miembro_inferior,
			diagnostico_pie_derecho, diagnostico_pie_izquierdo, observaciones,
			firma_paciente, firma_profesional, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	ficha.ID = uuid.New()
	ficha.CreatedAt = time.Now()
	ficha.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ficha.ID,
		ficha.PatientID,
		ficha.AppointmentID,
		ficha.Fecha,
		ficha.MotivoConsulta,
		ficha.Diabetes,
		ficha.Hipertension,
		ficha.Hipotiroidismo,
		ficha.Hipertiroidismo,
		ficha.TiempoEnfermedad,
		ficha.Medicacion,
		ficha.Alergias,
		ficha.CirugiasMiembroInferior,
		ficha.DiagnosticoPieDerecho,
		ficha.DiagnosticoPieIzquierdo,
		ficha.Observaciones,
		ficha.FirmaPaciente,
		ficha.FirmaProfesional,
		ficha.CreatedAt,
		ficha.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ficha: %w", err)
	}
	return nil
}

func (r *fichaRepository) Get(ctx context.Context, id uuid.UUID) (*model.Ficha, error) {
	query := `SELECT * FROM fichas_podologicas WHERE id = $1`
	var ficha model.Ficha
	err := r.db.GetContext(ctx, &ficha, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ficha: %w", err)
	}
	return &ficha, nil
}

func (r *fichaRepository) Update(ctx context.Context, ficha *model.Ficha) error {
	query := `
		UPDATE fichas_podologicas
		SET appointment_id = $1, fecha = $2, motivo_consulta = $3,
			diabetes = $4, hipertension = $5, hipotiroidismo = $6, hipertiroidismo = $7,
			tiempo_enfermedad = $8, medicacion = $9, alergias = $10,
			cirugias_miembro_inferior = $11, diagnostico_pie_derecho = $12,
			diagnostico_pie_izquierdo = $13, observaciones = $14,
			firma_paciente = $15, firma_profesional = $16, updated_at = $17
		WHERE id = $18
	`
	ficha.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		ficha.AppointmentID,
		ficha.Fecha,
		ficha.MotivoConsulta,
		ficha.Diabetes,
		ficha.Hipertension,
		ficha.Hipotiroidismo,
		ficha.Hipertiroidismo,
		ficha.TiempoEnfermedad,
		ficha.Medicacion,
		ficha.Alergias,
		ficha.CirugiasMiembroInferior,
		ficha.DiagnosticoPieDerecho,
		ficha.DiagnosticoPieIzquierdo,
		ficha.Observaciones,
		ficha.FirmaPaciente,
		ficha.FirmaProfesional,
		ficha.UpdatedAt,
		ficha.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ficha: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *fichaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fichas_podologicas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ficha: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *fichaRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ficha, error) {
	query := `SELECT * FROM fichas_podologicas WHERE patient_id = $1 ORDER BY fecha DESC`
	var fichas []*model.Ficha
	if err := r.db.SelectContext(ctx, &fichas, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list fichas: %w", err)
	}
	return fichas, nil
}
