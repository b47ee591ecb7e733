package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"ratings/internal/apperrors"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// validate is the shared validator instance with the project's custom rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration never fails for a well-formed tag name; ignore the error
	// like validator's own examples do.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// checkStruct runs the shared validator and converts failures to a field map.
func checkStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validation error: %w", err)
		}
		fields := make(apperrors.FieldErrors, len(validationErrors))
		for _, e := range validationErrors {
			fields[strings.ToLower(e.Field())] = fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
		return fields
	}
	return nil
}
