package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
	apperrors "github.com/podocentro/clinic-api/pkg/errors"
)

// MaxUploadBytes caps a single attachment at 10 MiB.
const MaxUploadBytes = 10 << 20

// Service stores patient attachments: bytes on local disk, metadata in the
// database. Files are laid out as <base>/<patient_id>/<file_id><ext>.
type Service struct {
	repo        repository.PatientFileRepository
	patientRepo repository.PatientRepository
	baseDir     string
}

func NewService(repo repository.PatientFileRepository, patientRepo repository.PatientRepository, baseDir string) (*Service, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Service{repo: repo, patientRepo: patientRepo, baseDir: baseDir}, nil
}

// Upload writes the multipart file to disk and records its metadata. A
// failed metadata write removes the orphaned bytes.
func (s *Service) Upload(ctx context.Context, patientID uuid.UUID, header *multipart.FileHeader) (*model.PatientFile, error) {
	if header.Size > MaxUploadBytes {
		return nil, apperrors.Validation(fmt.Sprintf("file exceeds the %d MiB limit", MaxUploadBytes>>20), nil)
	}

	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileID := uuid.New()
	dir := filepath.Join(s.baseDir, patientID.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create patient directory: %w", err)
	}

	path := filepath.Join(dir, fileID.String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, MaxUploadBytes))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	file := &model.PatientFile{
		PatientID:   patientID,
		Name:        filepath.Base(header.Filename),
		StoragePath: path,
		MimeType:    header.Header.Get("Content-Type"),
		SizeBytes:   written,
	}
	file.ID = fileID

	if err := s.repo.Create(ctx, file); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to record file metadata: %w", err)
	}
	return file, nil
}

// Open returns the metadata and a reader over the stored bytes. The caller
// closes the reader.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*model.PatientFile, io.ReadCloser, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}

	f, err := os.Open(file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return file, f, nil
}

// Delete removes the metadata row first, then the bytes. A leftover file on
// disk after a failed unlink is only logged; the record is already gone.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	if err := os.Remove(file.StoragePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", file.StoragePath).Msg("failed to remove stored file")
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientFile, error) {
	files, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}
