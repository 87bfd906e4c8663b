package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// unnamedField stands in for the field name of ValidateVar failures.
const unnamedField = "value"

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param} long",
	"max":      "{field} must be at most {param} long",
	"oneof":    "{field} must be one of {param}",
	"gtfield":  "{field} must be after {param}",
	"datetime": "{field} must match the layout {param}",
	"uuid":     "{field} must be a valid uuid",
	"empty":    "{field} must be empty",
}

// message renders the first failed rule using the JSON name of the field.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		field := valErr.Field()
		if field == "" {
			field = unnamedField
		}

		return strings.NewReplacer("{field}", field, "{param}", jsonName(valErr.Param())).Replace(tmpl)
	}

	return valErrors.Error()
}

// jsonName converts a Go field name used as a rule param (gtfield=StartAt)
// to its snake_case JSON form. Other params pass through untouched.
func jsonName(param string) string {
	if param == "" || param[0] < 'A' || param[0] > 'Z' || strings.ContainsAny(param, " -:") {
		return param
	}

	var b strings.Builder
	for i, r := range param {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}

			r += 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}
