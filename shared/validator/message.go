package validator

import (
	"errors"
	"strings"
	"unicode"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required":      "%f is required",
	"required_with": "%f is required when %p is set",
	"gte":           "%f must be greater than or equal to %p",
	"lte":           "%f must be less than or equal to %p",
	"gt":            "%f must be greater than %p",
	"oneof":         "%f must be one of %p",
	"max":           "%f must be at most %p",
	"min":           "%f must be at least %p",
	"len":           "%f must have length %p",
	"email":         "%f must be a valid email address",
	"date":          "%f must be a date formatted as YYYY-MM-DD",
	"eqfield":       "%f must match %p",
	"nefield":       "%f must differ from %p",
	"gtfield":       "%f must be after %p",
	"dive":          "%f contains an invalid value",
	"mimetypes":     "%f must be one of %p",
	"maxfilesize":   "%f must not be larger than %p MB",
	"uuid":          "%f must be a valid UUID",
	"money":         "%f must be a valid amount with at most two decimals",
}

// message describes the first failing field.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	first := fieldErrors[0]

	template, ok := templates[first.Tag()]
	if !ok {
		return first.Field() + " is invalid"
	}

	param := first.Param()
	if strings.HasSuffix(first.Tag(), "field") || first.Tag() == "required_with" {
		param = snakeCase(param)
	}

	return strings.NewReplacer("%f", first.Field(), "%p", param).Replace(template)
}

// snakeCase turns a struct field name param such as CheckIn into check_in.
func snakeCase(name string) string {
	var out strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				out.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		out.WriteRune(r)
	}

	return out.String()
}
