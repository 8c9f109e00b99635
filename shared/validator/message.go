package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"notblank": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"gt":       "{field} must be greater than {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"datetime": "{field} must be a valid date ({param})",
		"url":      "{field} must be a valid URL",
		"imageref": "{field} must be an image URL or a PNG, JPEG or WebP data URL",
	}
)

// Messenger is implemented by request DTOs that override the default message
// of a field/tag pair. Keys have the form "<json field>.<tag>".
type Messenger interface {
	ValidationMessages() map[string]string
}

func render(valErr val.FieldError, overrides map[string]string) string {
	field := valErr.Field()

	if msg, ok := overrides[field+"."+valErr.Tag()]; ok {
		return msg
	}

	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", field)
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

// fieldMessages returns the first rendered message and all messages keyed by field.
// Only the first failing tag of a field is kept.
func fieldMessages(err error, overrides map[string]string) (string, map[string]string) {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error(), nil
	}

	first := ""
	fields := make(map[string]string, len(valErrors))

	for _, valErr := range valErrors {
		if _, exists := fields[valErr.Field()]; exists {
			continue
		}

		msg := render(valErr, overrides)
		fields[valErr.Field()] = msg

		if first == "" {
			first = msg
		}
	}

	return first, fields
}

func message(err error) string {
	msg, _ := fieldMessages(err, nil)

	return msg
}
