package model

import (
	"time"

	"github.com/google/uuid"
)

type ClinicalNote struct {
	Base
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	ProfessionalID uuid.UUID `db:"professional_id" json:"professional_id"`
	Title          string    `db:"title" json:"title"`
	Content        string    `db:"content" json:"content"`
	NoteDate       time.Time `db:"note_date" json:"note_date"`
}

type CreateClinicalNoteRequest struct {
	PatientID      uuid.UUID `json:"patient_id" binding:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	Title          string    `json:"title" binding:"required"`
	Content        string    `json:"content"`
	NoteDate       time.Time `json:"note_date" binding:"required"`
}

type UpdateClinicalNoteRequest struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	NoteDate *time.Time `json:"note_date"`
}
