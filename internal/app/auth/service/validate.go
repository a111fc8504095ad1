package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return customErrors.NewInvalidArgument(err.Error())
	}

	out := &customErrors.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe, s))
	}
	return out
}

func message(fe validator.FieldError, s any) string {
	switch fe.Tag() {
	case "required":
		return "Missing data for required field."
	case "email":
		return "Not a valid email address."
	case "min", "max":
		if lo, hi, ok := lengthBounds(s, fe.StructField()); ok {
			return fmt.Sprintf("Length must be between %s and %s.", lo, hi)
		}
		if fe.Tag() == "min" {
			return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
		}
		return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// lengthBounds reports min and max when a field declares both.
func lengthBounds(s any, field string) (string, string, bool) {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	f, ok := t.FieldByName(field)
	if !ok {
		return "", "", false
	}
	var lo, hi string
	for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
		switch {
		case strings.HasPrefix(rule, "min="):
			lo = strings.TrimPrefix(rule, "min=")
		case strings.HasPrefix(rule, "max="):
			hi = strings.TrimPrefix(rule, "max=")
		}
	}
	return lo, hi, lo != "" && hi != ""
}
