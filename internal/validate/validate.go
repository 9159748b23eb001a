// Package validate wraps go-playground/validator behind a pipeline that
// collects every failing field of a request body into one error list.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eventhub/eventhub-go/internal/model"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseEventDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Struct validates a request struct and returns every failing field. A nil
// result means the struct is valid.
func Struct(req interface{}) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "valid email is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "eventdate":
		return "date must be a valid ISO8601 string"
	default:
		return fe.Field() + " is invalid"
	}
}
