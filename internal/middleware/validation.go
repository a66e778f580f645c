package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/caremate/caremate-api/internal/model"
)

// RegisterValidators installs the domain validation tags on gin's
// binding engine. Call once during startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	validators := map[string]validator.Func{
		"patientcategory": func(fl validator.FieldLevel) bool {
			return model.PatientCategory(fl.Field().String()).Valid()
		},
		"dayofweek": func(fl validator.FieldLevel) bool {
			return model.DayOfWeek(fl.Field().String()).Valid()
		},
		"nursestatus": func(fl validator.FieldLevel) bool {
			return model.NurseStatus(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return nil
}

// validationMessages maps validation tags to user-facing messages.
var validationMessages = map[string]string{
	"required":        "Field is required",
	"email":           "Invalid email format",
	"min":             "Value is too short",
	"max":             "Value is too long",
	"gte":             "Value is too small",
	"lte":             "Value is too large",
	"patientcategory": "Invalid patient category",
	"dayofweek":       "Invalid day of week",
	"nursestatus":     "Invalid nurse status",
}

// ValidationFields converts validator errors into a field -> message
// map for the response envelope. Returns nil when err is not a
// validation error.
func ValidationFields(err error) map[string]string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		msg := validationMessages[e.Tag()]
		if msg == "" {
			msg = "Invalid value"
		}
		fields[e.Field()] = msg
	}
	return fields
}
