package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator naming fields after their json or schema tags.
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("abspath", validateAbsPath)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, key := range []string{"json", "schema"} {
			name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}

		return ""
	})

	return validator{v}
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()
		if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateAbsPath reports whether the field is a string holding an absolute URL path.
func validateAbsPath(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	s := field.String()
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//")
}
