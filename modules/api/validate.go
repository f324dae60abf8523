package api

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator builds the request validator, naming fields by their json
// tag so error maps match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct validates a request DTO and returns a field -> messages
// map in the source API's wording, or nil if the request is valid.
func validateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"request": {"The request could not be validated."}}
	}

	fields := make(map[string][]string, len(invalid))
	for _, fe := range invalid {
		field := fe.Field()
		fields[field] = append(fields[field], fieldMessage(field, fe))
	}
	return fields
}

// fieldMessage renders one validation failure in the wording clients of
// the original API expect.
func fieldMessage(field string, fe validator.FieldError) string {
	display := strings.ReplaceAll(field, "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", display)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", display)
	case "max":
		return fmt.Sprintf("The %s must not be greater than %s characters.", display, fe.Param())
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", display, fe.Param())
	case "eqfield":
		return "The password confirmation does not match."
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", display)
	default:
		return fmt.Sprintf("The %s is invalid.", display)
	}
}

// dueDateLayouts are the date formats accepted for task due dates.
var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// parseDueDate parses a client-supplied due date. An empty string yields
// nil without error.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date format: %q", value)
}
