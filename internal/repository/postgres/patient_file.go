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

func (r *patientFileRepository) Create(ctx context.Context, file *model.PatientFile) error {
	query := `
		INSERT INTO patient_files (id, patient_id, name, storage_path, mime_type, size_bytes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	// The file service picks the id up front so the storage path can carry
	// it; only generate one when the caller did not.
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	file.CreatedAt = time.Now()
	file.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.PatientID,
		file.Name,
		file.StoragePath,
		file.MimeType,
		file.SizeBytes,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient file: %w", err)
	}
	return nil
}

func (r *patientFileRepository) Get(ctx context.Context, id uuid.UUID) (*model.PatientFile, error) {
	query := `SELECT * FROM patient_files WHERE id = $1`
	var file model.PatientFile
	err := r.db.GetContext(ctx, &file, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient file: %w", err)
	}
	return &file, nil
}

func (r *patientFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patient_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient file: %w", err)
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

func (r *patientFileRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientFile, error) {
	query := `SELECT * FROM patient_files WHERE patient_id = $1 ORDER BY created_at DESC`
	var files []*model.PatientFile
	if err := r.db.SelectContext(ctx, &files, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient files: %w", err)
	}
	return files, nil
}
