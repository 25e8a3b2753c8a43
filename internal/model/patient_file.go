package model

import "github.com/google/uuid"

// PatientFile is an uploaded attachment. The bytes live on disk under
// StoragePath; only metadata is kept in the store.
type PatientFile struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Name        string    `db:"name" json:"name"`
	StoragePath string    `db:"storage_path" json:"-"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
}
