package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding rules used by the request
// types in this package. Call once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cedula", validCedula)
	}
}

// validCedula accepts national id numbers of 8 to 10 digits.
func validCedula(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 || len(s) > 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
