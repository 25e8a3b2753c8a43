package model

import "time"

type Patient struct {
	Base
	Cedula    string     `db:"cedula" json:"cedula"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     string     `db:"email" json:"email"`
	History   string     `db:"history" json:"history"`
	Address   string     `db:"address" json:"address"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
}

type CreatePatientRequest struct {
	Cedula    string     `json:"cedula" binding:"required,cedula"`
	Name      string     `json:"name" binding:"required"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email" binding:"omitempty,email"`
	History   string     `json:"history"`
	Address   string     `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

type UpdatePatientRequest struct {
	Cedula    *string    `json:"cedula" binding:"omitempty,cedula"`
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	History   *string    `json:"history"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

// PatientFilters narrows patient listings.
type PatientFilters struct {
	SearchTerm string `form:"q"`
	Pagination
}
