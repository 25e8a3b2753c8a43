package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/podocentro/clinic-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

type clinicalNoteRepository struct {
	db *sqlx.DB
}

type patientFileRepository struct {
	db *sqlx.DB
}

type fichaRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type reportRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func NewClinicalNoteRepository(db *sqlx.DB) repository.ClinicalNoteRepository {
	return &clinicalNoteRepository{db: db}
}

func NewPatientFileRepository(db *sqlx.DB) repository.PatientFileRepository {
	return &patientFileRepository{db: db}
}

func NewFichaRepository(db *sqlx.DB) repository.FichaRepository {
	return &fichaRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}
