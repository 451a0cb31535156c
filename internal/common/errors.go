package common

import (
	"errors"
	"fmt"
)

// ValidationError signals missing or malformed input: absent metadata
// fields, an incomplete setup intent, or a malformed request. Not
// retryable; surfaced to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError signals a missing dojo, class, subscription, or a webhook
// referencing state this service never originated.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// OwnershipError signals that the requesting user does not own the
// resource they are operating on.
type OwnershipError struct {
	Resource string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("requesting user does not own %s", e.Resource)
}

func NewOwnershipError(resource string) error {
	return &OwnershipError{Resource: resource}
}

func IsOwnership(err error) bool {
	var oe *OwnershipError
	return errors.As(err, &oe)
}

// GatewayError wraps a failed payment gateway call. Never retried
// internally; the caller's own retry (user resubmission or webhook
// redelivery) is the recovery mechanism.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NewGatewayError(op string, err error) error {
	return &GatewayError{Op: op, Err: err}
}

func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
