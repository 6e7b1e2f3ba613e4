package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// plates are letters, digits, spaces and dashes, 2 to 16 chars after
	// trimming
	plateValidRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 -]{0,14}[a-zA-Z0-9]$`)
	phoneValidRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,18}$`)
)

func plateValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return plateValidRegex.MatchString(strings.TrimSpace(val))
}

func paymentMethodValidator(fl validator.FieldLevel) bool {
	val := fl.Field().String()

	switch val {
	case "cash":
		fallthrough
	case "card":
		fallthrough
	case "other":
		return true
	default:
		return false
	}
}

func phoneValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return phoneValidRegex.MatchString(strings.TrimSpace(val))
}
