package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/model"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		// List returns appointments ordered by start time ascending, with
		// display names resolved from the referenced entities.
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		// Delete removes the patient and cascades to appointments, notes,
		// files and fichas.
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	ClinicalNoteRepository interface {
		Create(ctx context.Context, note *model.ClinicalNote) error
		Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error)
		Update(ctx context.Context, note *model.ClinicalNote) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalNote, error)
	}

	PatientFileRepository interface {
		Create(ctx context.Context, file *model.PatientFile) error
		Get(ctx context.Context, id uuid.UUID) (*model.PatientFile, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientFile, error)
	}

	FichaRepository interface {
		Create(ctx context.Context, ficha *model.Ficha) error
		Get(ctx context.Context, id uuid.UUID) (*model.Ficha, error)
		Update(ctx context.Context, ficha *model.Ficha) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ficha, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		List(ctx context.Context) ([]*model.User, error)
	}

	ReportRepository interface {
		CountPatients(ctx context.Context) (int64, error)
		CountAppointments(ctx context.Context, from, to time.Time) (int64, error)
		CountAppointmentsByStatus(ctx context.Context) (map[string]int64, error)
		AppointmentsPerDay(ctx context.Context, from, to time.Time) ([]model.DayCount, error)
		// Income sums service prices of completed appointments in [from, to).
		Income(ctx context.Context, from, to time.Time) (float64, error)
		IncomeByService(ctx context.Context, from, to time.Time) ([]model.ServiceIncome, error)
		IncomeBySede(ctx context.Context, from, to time.Time) ([]model.SedeIncome, error)
	}
)
