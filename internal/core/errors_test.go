package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "single field",
			err:      &ValidationError{Fields: []string{"location"}},
			expected: "all fields required: missing location",
		},
		{
			name:     "several fields",
			err:      &ValidationError{Fields: []string{"extension", "username"}},
			expected: "all fields required: missing extension, username",
		},
		{
			name:     "with reason",
			err:      &ValidationError{Fields: []string{"rowIndex"}, Reason: "row index -1 is negative"},
			expected: "validation failed: row index -1 is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", tt.err.Error(), tt.expected)
			}

			if !errors.Is(tt.err, ErrValidationFailed) {
				t.Error("errors.Is should match ErrValidationFailed")
			}
		})
	}
}

func TestFetchError(t *testing.T) {
	innerErr := errors.New("connection refused")
	err := &FetchError{Err: innerErr}

	expected := "failed to load data: connection refused"
	if err.Error() != expected {
		t.Errorf("FetchError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, innerErr) {
		t.Error("errors.Is should find the inner error")
	}

	if !errors.Is(err, ErrFetchFailed) {
		t.Error("errors.Is should match ErrFetchFailed")
	}

	// Still matches after wrapping
	wrapped := fmt.Errorf("add applied but refresh failed: %w", err)
	if !errors.Is(wrapped, ErrFetchFailed) {
		t.Error("wrapped FetchError should match ErrFetchFailed")
	}
}

func TestMutationError(t *testing.T) {
	err := &MutationError{Action: ActionAdd, Reason: "quota exceeded"}

	expected := "failed to add entry: quota exceeded"
	if err.Error() != expected {
		t.Errorf("MutationError.Error() = %q, want %q", err.Error(), expected)
	}

	assert.ErrorIs(t, err, ErrMutationRejected)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestTransportError(t *testing.T) {
	innerErr := errors.New("timeout")
	err := &TransportError{Action: ActionDelete, Err: innerErr}

	expected := "failed to delete entry: timeout"
	if err.Error() != expected {
		t.Errorf("TransportError.Error() = %q, want %q", err.Error(), expected)
	}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, innerErr)
	assert.NotErrorIs(t, err, ErrMutationRejected)
}

func TestRemoteError(t *testing.T) {
	tests := []struct {
		name     string
		err      *RemoteError
		expected string
	}{
		{
			name:     "with reason",
			err:      &RemoteError{Action: ActionUpdate, Reason: "row not found"},
			expected: "remote store rejected update: row not found",
		},
		{
			name:     "without reason",
			err:      &RemoteError{Action: ActionRead},
			expected: "remote store rejected read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
