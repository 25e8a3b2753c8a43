package model

import "github.com/lib/pq"

// Service is a catalog entry: a treatment the clinic offers. Appointment
// duration is inferred from the referenced service, there is no duration on
// the appointment itself.
type Service struct {
	Base
	Name           string         `db:"name" json:"name"`
	Duration       int            `db:"duration" json:"duration"` // minutes
	Price          float64        `db:"price" json:"price"`
	AvailableSedes pq.StringArray `db:"available_sedes" json:"available_sedes"`
}

// OfferedAt reports whether the service is offered at the given sede.
func (s *Service) OfferedAt(sede Sede) bool {
	for _, v := range s.AvailableSedes {
		if Sede(v) == sede {
			return true
		}
	}
	return false
}

type CreateServiceRequest struct {
	Name           string  `json:"name" binding:"required"`
	Duration       int     `json:"duration" binding:"required,min=5,max=480"`
	Price          float64 `json:"price" binding:"min=0"`
	AvailableSedes []Sede  `json:"available_sedes" binding:"required,min=1,dive,oneof=norte sur"`
}

type UpdateServiceRequest struct {
	Name           *string  `json:"name"`
	Duration       *int     `json:"duration" binding:"omitempty,min=5,max=480"`
	Price          *float64 `json:"price" binding:"omitempty,min=0"`
	AvailableSedes []Sede   `json:"available_sedes" binding:"omitempty,min=1,dive,oneof=norte sur"`
}
