package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationFailed matches any ValidationError
	ErrValidationFailed = errors.New("validation failed")

	// ErrFetchFailed matches any FetchError
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMutationRejected matches any MutationError
	ErrMutationRejected = errors.New("mutation rejected")

	// ErrTransport matches any TransportError
	ErrTransport = errors.New("transport error")

	// ErrOperationInFlight is returned when a change is attempted while another
	// change (or its refresh) has not finished
	ErrOperationInFlight = errors.New("another change is still in progress")

	// ErrNotConfirmed is returned when a deletion is not confirmed
	ErrNotConfirmed = errors.New("deletion not confirmed")

	// ErrAdminRequired is returned when a read-only session attempts a change
	ErrAdminRequired = errors.New("admin access required")

	// ErrInvalidPassword is returned by a failed admin login
	ErrInvalidPassword = errors.New("invalid password")

	// ErrEndpointRequired is returned when no remote store URL is configured
	ErrEndpointRequired = errors.New("remote endpoint is not configured (run 'phonebook configure' or set PHONEBOOK_ENDPOINT)")
)

// ValidationError indicates required fields were empty. It is raised before
// any network call.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return "validation failed: " + e.Reason
	}

	return fmt.Sprintf("all fields required: missing %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// FetchError indicates the directory could not be loaded. The mirror is left
// at its prior state.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load data: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// MutationError indicates the remote store explicitly refused a change.
type MutationError struct {
	Action Action
	Reason string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("failed to %s entry: %s", e.Action, e.Reason)
}

func (e *MutationError) Is(target error) bool {
	return target == ErrMutationRejected
}

// TransportError wraps a network-level failure during a change.
type TransportError struct {
	Action Action
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s entry: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// RemoteError is a success:false answer from the remote store, before it is
// classified by the directory.
type RemoteError struct {
	Action Action
	Reason string
}

func (e *RemoteError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("remote store rejected %s", e.Action)
	}

	return fmt.Sprintf("remote store rejected %s: %s", e.Action, e.Reason)
}
