package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "PENDING", "ACCEPTED", "REJECTED":
			return true
		}
		return false
	})

	validate.RegisterValidation("benefit_category", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "UA", "PARTNER":
			return true
		}
		return false
	})

	// Rejects whitespace-only strings that pass "required".
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "notblank":
			errors[field] = "This field must not be blank"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "application_status":
			errors[field] = "Invalid status. Must be: PENDING, ACCEPTED, or REJECTED"
		case "benefit_category":
			errors[field] = "Invalid category. Must be: UA or PARTNER"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
