package model

import (
	"time"

	"github.com/google/uuid"
)

// Ficha is the structured podiatric intake/examination form, tied to a
// patient and optionally to the appointment that prompted it. Field names
// follow the clinical form the staff fills in.
type Ficha struct {
	Base
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID  *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Fecha          time.Time  `db:"fecha" json:"fecha"`
	MotivoConsulta string     `db:"motivo_consulta" json:"motivo_consulta"`

	// Pre-existing condition flags.
	Diabetes        bool `db:"diabetes" json:"diabetes"`
	Hipertension    bool `db:"hipertension" json:"hipertension"`
	Hipotiroidismo  bool `db:"hipotiroidismo" json:"hipotiroidismo"`
	Hipertiroidismo bool `db:"hipertiroidismo" json:"hipertiroidismo"`

	TiempoEnfermedad        string `db:"tiempo_enfermedad" json:"tiempo_enfermedad"`
	Medicacion              string `db:"medicacion" json:"medicacion"`
	Alergias                string `db:"alergias" json:"alergias"`
	CirugiasMiembroInferior string `db:"cirugias_miembro_inferior" json:"cirugias_miembro_inferior"`
	DiagnosticoPieDerecho   string `db:"diagnostico_pie_derecho" json:"diagnostico_pie_derecho"`
	DiagnosticoPieIzquierdo string `db:"diagnostico_pie_izquierdo" json:"diagnostico_pie_izquierdo"`
	Observaciones           string `db:"observaciones" json:"observaciones"`

	FirmaPaciente    *string `db:"firma_paciente" json:"firma_paciente,omitempty"`
	FirmaProfesional *string `db:"firma_profesional" json:"firma_profesional,omitempty"`
}

type CreateFichaRequest struct {
	PatientID      uuid.UUID  `json:"patient_id" binding:"required"`
	AppointmentID  *uuid.UUID `json:"appointment_id"`
	Fecha          time.Time  `json:"fecha" binding:"required"`
	MotivoConsulta string     `json:"motivo_consulta"`

	Diabetes        bool `json:"diabetes"`
	Hipertension    bool `json:"hipertension"`
	Hipotiroidismo  bool `json:"hipotiroidismo"`
	Hipertiroidismo bool `json:"hipertiroidismo"`

	TiempoEnfermedad        string `json:"tiempo_enfermedad"`
	Medicacion              string `json:"medicacion"`
	Alergias                string `json:"alergias"`
	CirugiasMiembroInferior string `json:"cirugias_miembro_inferior"`
	DiagnosticoPieDerecho   string `json:"diagnostico_pie_derecho"`
	DiagnosticoPieIzquierdo string `json:"diagnostico_pie_izquierdo"`
	Observaciones           string `json:"observaciones"`

	FirmaPaciente    *string `json:"firma_paciente"`
	FirmaProfesional *string `json:"firma_profesional"`
}
