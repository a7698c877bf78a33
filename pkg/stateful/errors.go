package stateful

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// Messages used in error bodies.
const (
	MsgBlank         = "can't be blank"
	MsgInvalid       = "is invalid"
	MsgTaken         = "has already been taken"
	MsgNotFound      = "not found"
	MsgNotAuthorized = "not authorized"
	MsgUnauthorized  = "Unauthorized"
	MsgSelfFollow    = "cannot follow yourself"
	MsgInternal      = "internal error"
)

// FieldCredentials is the error field used for failed logins. It never says
// which of the two values was wrong.
const FieldCredentials = "email or password"

// FieldError is implemented by every error the store returns. The HTTP
// layer turns it into {"errors": Fields()} with StatusCode().
type FieldError interface {
	error
	StatusCode() int
	Fields() map[string][]string
}

// ValidationError is returned when input is missing or malformed.
type ValidationError struct {
	fields map[string][]string
}

// NewValidationError returns a ValidationError holding one field message.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	e.fields[field] = append(e.fields[field], message)
}

// Empty reports whether no field message was added.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(e.fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// Fields returns the field messages.
func (e *ValidationError) Fields() map[string][]string {
	return e.fields
}

// ConflictError is returned when a unique value is already in use.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, MsgTaken)
}

// StatusCode returns the HTTP status code for this error.
func (e *ConflictError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// Fields returns the field messages.
func (e *ConflictError) Fields() map[string][]string {
	return map[string][]string{e.Field: {MsgTaken}}
}

// UnauthorizedError is returned when a caller must be authenticated.
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string { return "authentication required" }

// StatusCode returns the HTTP status code for this error.
func (e *UnauthorizedError) StatusCode() int {
	return http.StatusUnauthorized
}

// Fields returns the field messages.
func (e *UnauthorizedError) Fields() map[string][]string {
	return map[string][]string{"message": {MsgUnauthorized}}
}

// ForbiddenError is returned when the caller does not own the resource.
type ForbiddenError struct {
	Resource string // "article" or "comment"
	ID       string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s %q: caller is not the author", e.Resource, e.ID)
}

// StatusCode returns the HTTP status code for this error.
func (e *ForbiddenError) StatusCode() int {
	return http.StatusForbidden
}

// Fields returns the field messages.
func (e *ForbiddenError) Fields() map[string][]string {
	return map[string][]string{e.Resource: {MsgNotAuthorized}}
}

// NotFoundError is returned when a referenced entity does not exist.
type NotFoundError struct {
	Resource string // "article", "comment" or "profile"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Fields returns the field messages.
func (e *NotFoundError) Fields() map[string][]string {
	return map[string][]string{e.Resource: {MsgNotFound}}
}

// ToErrorBody converts any error to a status code and error envelope.
// Errors that do not implement FieldError map to 500.
func ToErrorBody(err error) (int, conduit.ErrorBody) {
	var fe FieldError
	if errors.As(err, &fe) {
		return fe.StatusCode(), conduit.ErrorBody{Errors: fe.Fields()}
	}
	return http.StatusInternalServerError, conduit.NewErrorBody("server", MsgInternal)
}
