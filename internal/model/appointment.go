package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// ValidStatusTransition reports whether an appointment may move from one
// status to another. The status graph is fully connected: any status is
// reachable from any other by explicit staff action, self-transitions
// included. There are no automatic transitions.
func ValidStatusTransition(from, to AppointmentStatus) bool {
	return from.Valid() && to.Valid()
}

// Appointment is a booked visit. The *Name fields are resolved from the
// referenced entities at read time and are never authoritative: only the id
// fields identify the patient, service and professional.
type Appointment struct {
	Base
	PatientID        uuid.UUID         `db:"patient_id" json:"patient_id"`
	PatientName      string            `db:"patient_name" json:"patient_name"`
	ServiceID        uuid.UUID         `db:"service_id" json:"service_id"`
	ServiceName      string            `db:"service_name" json:"service_name"`
	ProfessionalID   uuid.UUID         `db:"professional_id" json:"professional_id"`
	ProfessionalName string            `db:"professional_name" json:"professional_name"`
	Sede             Sede              `db:"sede" json:"sede"`
	StartTime        time.Time         `db:"start_time" json:"start_time"`
	Status           AppointmentStatus `db:"status" json:"status"`
	Notes            string            `db:"notes" json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id" binding:"required"`
	ServiceID      uuid.UUID `json:"service_id" binding:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" binding:"required"`
	Sede           Sede      `json:"sede" binding:"required,oneof=norte sur"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	Status         string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Notes          string    `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	PatientID      *uuid.UUID         `json:"patient_id"`
	ServiceID      *uuid.UUID         `json:"service_id"`
	ProfessionalID *uuid.UUID         `json:"professional_id"`
	Sede           *Sede              `json:"sede" binding:"omitempty,oneof=norte sur"`
	StartTime      *time.Time         `json:"start_time"`
	Status         *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Notes          *string            `json:"notes" binding:"omitempty,max=1000"`
}

// AppointmentFilters narrows appointment listings. Zero values mean
// "no constraint".
type AppointmentFilters struct {
	Sede           Sede
	ProfessionalID uuid.UUID
	PatientID      uuid.UUID
	Status         AppointmentStatus
	From           time.Time
	To             time.Time
}
