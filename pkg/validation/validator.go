package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/civiclens/conduit-mock/pkg/stateful"
)

// FieldBody is the field reported when the request wrapper is missing.
const FieldBody = "body"

// Validator wraps go-playground/validator with Conduit error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that knows the tags used by conduit request types.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// RegisterValidation only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Validator{v: v}
}

// Validate validates a struct. Failures come back as *stateful.ValidationError
// so the HTTP layer renders them like store validation errors.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	verr := &stateful.ValidationError{}
	for _, e := range validationErrs {
		if isWrapper(e) {
			verr.Add(FieldBody, stateful.MsgInvalid)
			continue
		}
		verr.Add(e.Field(), friendlyMessage(e))
	}
	return verr
}

// isWrapper reports whether e is about a top-level field such as "user"
// in {"user": {...}}.
func isWrapper(e validator.FieldError) bool {
	return strings.Count(e.Namespace(), ".") == 1
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return stateful.MsgBlank
	default:
		return stateful.MsgInvalid
	}
}
