package validator

import (
	"github.com/go-playground/validator/v10"
)

func exportFormatValidator(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "word":
		fallthrough
	case "pdf":
		fallthrough
	case "html":
		fallthrough
	case "markdown":
		return true
	default:
		return false
	}
}

func integrationTypeValidator(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "sharepoint":
		fallthrough
	case "confluence":
		return true
	default:
		return false
	}
}
