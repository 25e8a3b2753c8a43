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

// selectAppointment resolves display names at read time. Only the id columns
// are authoritative; the joined names exist for rendering.
const selectAppointment = `
	SELECT a.id, a.patient_id, a.service_id, a.professional_id,
		   a.sede, a.start_time, a.status, a.notes,
		   a.created_at, a.updated_at,
		   COALESCE(p.name, '') AS patient_name,
		   COALESCE(s.name, '') AS service_name,
		   COALESCE(u.name, '') AS professional_name
	FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN services s ON s.id = a.service_id
	LEFT JOIN users u ON u.id = a.professional_id
`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, service_id, professional_id,
			sede, start_time, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.ServiceID,
		appointment.ProfessionalID,
		appointment.Sede,
		appointment.StartTime,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := selectAppointment + ` WHERE a.id = $1`

	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, service_id = $2, professional_id = $3,
			sede = $4, start_time = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $9
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.PatientID,
		appointment.ServiceID,
		appointment.ProfessionalID,
		appointment.Sede,
		appointment.StartTime,
		appointment.Status,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := selectAppointment + ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.Sede != "" {
			query += fmt.Sprintf(" AND a.sede = $%d", argCount)
			args = append(args, filters.Sede)
			argCount++
		}
		if filters.ProfessionalID != uuid.Nil {
			query += fmt.Sprintf(" AND a.professional_id = $%d", argCount)
			args = append(args, filters.ProfessionalID)
			argCount++
		}
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND a.patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND a.status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.From.IsZero() {
			query += fmt.Sprintf(" AND a.start_time >= $%d", argCount)
			args = append(args, filters.From)
			argCount++
		}
		if !filters.To.IsZero() {
			query += fmt.Sprintf(" AND a.start_time < $%d", argCount)
			args = append(args, filters.To)
			argCount++
		}
	}

	query += " ORDER BY a.start_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
