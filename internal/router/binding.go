package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/clinicaustral/clinica-api/pkg/rut"
)

// RegisterValidators installs the custom binding tags used by the
// request structs. Safe to call more than once.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
			return rut.Valid(rut.Normalize(fl.Field().String()))
		})
	}
}
