package utils

import (
	"ember-emr-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate    *validator.Validate
	fhirIDRegex = regexp.MustCompile(constvars.RegexFHIRID)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("fhir_id", validateFHIRID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateFHIRID checks a single logical id, e.g. a path parameter.
func ValidateFHIRID(id string) error {
	return validate.Var(id, "required,fhir_id")
}

func validateFHIRID(fl validator.FieldLevel) bool {
	return fhirIDRegex.MatchString(fl.Field().String())
}
