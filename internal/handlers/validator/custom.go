package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var vmNameValidRegex = regexp.MustCompile(`^[^\x00-\x1f%/\\]+$`)

func vmNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return vmNameValidRegex.MatchString(val)
}

func waveModeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case "":
		fallthrough
	case "complexity":
		fallthrough
	case "network":
		return true
	default:
		return false
	}
}
