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

func (r *clinicalNoteRepository) Create(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		INSERT INTO clinical_notes (id, patient_id, professional_id, title, content, note_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.PatientID,
		note.ProfessionalID,
		note.Title,
		note.Content,
		note.NoteDate,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinical note: %w", err)
	}
	return nil
}

func (r *clinicalNoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	query := `SELECT * FROM clinical_notes WHERE id = $1`
	var note model.ClinicalNote
	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}
	return &note, nil
}

func (r *clinicalNoteRepository) Update(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		UPDATE clinical_notes
		SET title = $1, content = $2, note_date = $3, updated_at = $4
		WHERE id = $5
	`
	note.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, note.Title, note.Content, note.NoteDate, note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update clinical note: %w", err)
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

func (r *clinicalNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clinical_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinical note: %w", err)
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

func (r *clinicalNoteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalNote, error) {
	query := `SELECT * FROM clinical_notes WHERE patient_id = $1 ORDER BY note_date DESC`
	var notes []*model.ClinicalNote
	if err := r.db.SelectContext(ctx, &notes, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}
