package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edumanage/backend/core"
)

var (
	roleTag  = "role"
	roleText = "must be one of: student, teacher, admin"
)

// RegisterValidators registers the user package's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation only allows values of the closed Role enum.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).IsValid()
}
