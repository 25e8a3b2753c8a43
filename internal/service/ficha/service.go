package ficha

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
)

// Service manages fichas podológicas, the structured intake forms filled in
// during an examination.
type Service struct {
	repo        repository.FichaRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.FichaRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

func (s *Service) CreateFicha(ctx context.Context, req *model.CreateFichaRequest) (*model.Ficha, error) {
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	ficha := &model.Ficha{
		PatientID:      req.PatientID,
		AppointmentID:  req.AppointmentID,
		Fecha:          req.Fecha,
		MotivoConsulta: req.MotivoConsulta,

		Diabetes:        req.Diabetes,
		Hipertension:    req.Hipertension,
		Hipotiroidismo:  req.Hipotiroidismo,
		Hipertiroidismo: req.Hipertiroidismo,

		TiempoEnfermedad:        req.TiempoEnfermedad,
		Medicacion:              req.Medicacion,
		Alergias:                req.Alergias,
		CirugiasMiembroInferior: req.CirugiasMiembroInferior,
		DiagnosticoPieDerecho:   req.DiagnosticoPieDerecho,
		DiagnosticoPieIzquierdo: req.DiagnosticoPieIzquierdo,
		Observaciones:           req.Observaciones,

		FirmaPaciente:    req.FirmaPaciente,
		FirmaProfesional: req.FirmaProfesional,
	}
	if err := s.repo.Create(ctx, ficha); err != nil {
		return nil, fmt.Errorf("failed to create ficha: %w", err)
	}
	return ficha, nil
}

func (s *Service) GetFicha(ctx context.Context, id uuid.UUID) (*model.Ficha, error) {
	ficha, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ficha: %w", err)
	}
	return ficha, nil
}

// UpdateFicha replaces the form contents wholesale. The form is edited as a
// unit in the clinic, so there is no per-field patch request.
func (s *Service) UpdateFicha(ctx context.Context, id uuid.UUID, req *model.CreateFichaRequest) (*model.Ficha, error) {
	ficha, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ficha: %w", err)
	}

	ficha.AppointmentID = req.AppointmentID
	ficha.Fecha = req.Fecha
	ficha.MotivoConsulta = req.MotivoConsulta
	ficha.Diabetes = req.Diabetes
	ficha.Hipertension = req.Hipertension
	ficha.Hipotiroidismo = req.Hipotiroidismo
	ficha.Hipertiroidismo = req.Hipertiroidismo
	ficha.TiempoEnfermedad = req.TiempoEnfermedad
	ficha.Medicacion = req.Medicacion
	ficha.Alergias = req.Alergias
	ficha.CirugiasMiembroInferior = req.CirugiasMiembroInferior
	ficha.DiagnosticoPieDerecho = req.DiagnosticoPieDerecho
	ficha.DiagnosticoPieIzquierdo = req.DiagnosticoPieIzquierdo
	ficha.Observaciones = req.Observaciones
	ficha.FirmaPaciente = req.FirmaPaciente
	ficha.FirmaProfesional = req.FirmaProfesional

	if err := s.repo.Update(ctx, ficha); err != nil {
		return nil, fmt.Errorf("failed to update ficha: %w", err)
	}
	return ficha, nil
}

func (s *Service) DeleteFicha(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ficha: %w", err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ficha, error) {
	fichas, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fichas: %w", err)
	}
	return fichas, nil
}
