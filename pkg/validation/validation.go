// Package validation checks request and option structs against their
// `validate` tags and reports failures by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "coursecred/pkg/domain-errors"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validate is safe for concurrent use once its tags are registered.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	for tag, fn := range map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
		"hexcolor": func(fl validator.FieldLevel) bool { return hexColor.MatchString(fl.Field().String()) },
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	return v
}()

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Messages by tag; %[1]s is the field and %[2]s the tag parameter.
var messages = map[string]string{
	"required": "%[1]s is required",
	"notblank": "%[1]s must not be blank",
	"email":    "%[1]s must be a valid email",
	"url":      "%[1]s must be a valid url",
	"min":      "%[1]s must be at least %[2]s",
	"gte":      "%[1]s must be at least %[2]s",
	"max":      "%[1]s must be at most %[2]s",
	"lte":      "%[1]s must be at most %[2]s",
	"oneof":    "%[1]s must be one of [%[2]s]",
	"hexcolor": "%[1]s must be a 3 or 6 digit hex color",
}

// Validate checks req and returns a CodeValidation error naming every
// failing field.
func Validate(req any) error {
	return ValidateAs(req, dErrors.CodeValidation)
}

// ValidateAs is Validate with a caller chosen domain code.
func ValidateAs(req any, code dErrors.Code) error {
	if err := validate.Struct(req); err != nil {
		return dErrors.New(code, ErrorMessage(err))
	}
	return nil
}

// ErrorMessage renders validator failures, joined by "; ".
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fieldMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}
	format, ok := messages[fe.ActualTag()]
	if !ok {
		format = "%[1]s is invalid"
	}
	return fmt.Sprintf(format, field, fe.Param())
}
