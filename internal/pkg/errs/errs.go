package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap target for each error kind.
// Callers classify errors with errors.Is against these values.
var (
	ErrValueIsRequired      = errors.New("value is required")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is invalid")
	ErrObjectNotFound       = errors.New("object not found")
	ErrStateConflict        = errors.New("state conflict")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrGenerationExhausted  = errors.New("number generation exhausted")
	ErrDuplicateValue       = errors.New("duplicate value")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// sanitize collapses newlines so error messages always render on one line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ValueIsRequiredError indicates a required parameter was missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a parameter was present but malformed or
// otherwise unacceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value with
// an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value fell outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for an out-of-range value.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for an out-of-range value
// with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsOutOfRange, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates an entity was absent from storage or outside
// the caller's visibility scope.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object with
// an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// StateConflictError indicates an operation was rejected because the current
// state of an entity does not permit it: an invalid status transition, a route
// mismatch, an article already loaded elsewhere, a vehicle already out on a
// trip, or a trip that is no longer editable.
type StateConflictError struct {
	Subject string
	Detail  string
	Cause   error
}

// NewStateConflictError creates an error for a state-conflicting operation.
func NewStateConflictError(subject, detail string) *StateConflictError {
	return &StateConflictError{Subject: subject, Detail: detail}
}

// NewStateConflictErrorWithCause creates a state conflict error with an
// underlying cause.
func NewStateConflictErrorWithCause(subject, detail string, cause error) *StateConflictError {
	return &StateConflictError{Subject: subject, Detail: detail, Cause: cause}
}

func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrStateConflict, e.Subject, e.Detail)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// NotAuthorizedError indicates the acting user may not perform the operation:
// wrong branch, insufficient role, or a workflow context that does not match
// the requested transition.
type NotAuthorizedError struct {
	Reason string
	Cause  error
}

// NewNotAuthorizedError creates an error for a scope or workflow violation.
func NewNotAuthorizedError(reason string) *NotAuthorizedError {
	return &NotAuthorizedError{Reason: reason}
}

// NewNotAuthorizedErrorWithCause creates an authorization error with an
// underlying cause.
func NewNotAuthorizedErrorWithCause(reason string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Reason: reason, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrNotAuthorized, e.Reason)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// CapacityExceededError indicates a load request would overload the vehicle.
// Carries the structured utilization detail returned to the caller.
type CapacityExceededError struct {
	UtilizationPercent float64
	CapacityKg         float64
	RequestedKg        float64
}

// NewCapacityExceededError creates a capacity violation error.
func NewCapacityExceededError(utilizationPercent, capacityKg, requestedKg float64) *CapacityExceededError {
	return &CapacityExceededError{
		UtilizationPercent: utilizationPercent,
		CapacityKg:         capacityKg,
		RequestedKg:        requestedKg,
	}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: utilization %.0f%%, capacity %.2f kg, requested %.2f kg",
		ErrCapacityExceeded, e.UtilizationPercent, e.CapacityKg, e.RequestedKg)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// GenerationExhaustedError indicates every reservation attempt for a number
// collided, including the randomized fallback.
type GenerationExhaustedError struct {
	Prefix   string
	Attempts int
	Cause    error
}

// NewGenerationExhaustedError creates an error for exhausted number generation.
func NewGenerationExhaustedError(prefix string, attempts int, cause error) *GenerationExhaustedError {
	return &GenerationExhaustedError{Prefix: prefix, Attempts: attempts, Cause: cause}
}

func (e *GenerationExhaustedError) Error() string {
	msg := fmt.Sprintf("%s: prefix %s after %d attempts", ErrGenerationExhausted, e.Prefix, e.Attempts)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *GenerationExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}

// DuplicateValueError is the translated form of a store unique-constraint
// violation. Raw store error codes never cross the adapter boundary.
type DuplicateValueError struct {
	Constraint string
	Cause      error
}

// NewDuplicateValueError creates a translated unique-constraint error.
func NewDuplicateValueError(constraint string, cause error) *DuplicateValueError {
	return &DuplicateValueError{Constraint: constraint, Cause: cause}
}

func (e *DuplicateValueError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrDuplicateValue, e.Constraint)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *DuplicateValueError) Unwrap() error {
	return ErrDuplicateValue
}

// ReferentialIntegrityError is the translated form of a store foreign-key
// violation.
type ReferentialIntegrityError struct {
	Constraint string
	Cause      error
}

// NewReferentialIntegrityError creates a translated foreign-key error.
func NewReferentialIntegrityError(constraint string, cause error) *ReferentialIntegrityError {
	return &ReferentialIntegrityError{Constraint: constraint, Cause: cause}
}

func (e *ReferentialIntegrityError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrReferentialIntegrity, e.Constraint)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return ErrReferentialIntegrity
}
