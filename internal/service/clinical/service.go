package clinical

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
)

// Service manages free-form clinical notes attached to a patient record.
type Service struct {
	repo        repository.ClinicalNoteRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.ClinicalNoteRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

func (s *Service) CreateNote(ctx context.Context, req *model.CreateClinicalNoteRequest) (*model.ClinicalNote, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	note := &model.ClinicalNote{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		Title:          req.Title,
		Content:        req.Content,
		NoteDate:       req.NoteDate,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create clinical note: %w", err)
	}
	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}
	return note, nil
}

func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, req *model.UpdateClinicalNoteRequest) (*model.ClinicalNote, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.NoteDate != nil {
		note.NoteDate = *req.NoteDate
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update clinical note: %w", err)
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinical note: %w", err)
	}
	return nil
}

// ListByPatient returns the patient's notes newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalNote, error) {
	notes, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}
