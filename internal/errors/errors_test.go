package errors

import (
	"errors"
	"testing"
)

func TestAppError(t *testing.T) {
	err := InvalidInput("measure is required")
	if err.Code != CodeInvalidInput {
		t.Errorf("code = %s", err.Code)
	}
	if err.Error() != "measure is required" {
		t.Errorf("message = %q", err.Error())
	}

	if ConfigInvalid("PORT must not be empty").Code != CodeConfigInvalid {
		t.Error("ConfigInvalid code mismatch")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	wrapped := Wrap(cause, "configuration validation failed")

	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("code = %s, want %s", GetCode(wrapped), CodeInternalError)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error lost its cause")
	}

	// Wrapping an AppError preserves its code.
	rewrapped := Wrap(InvalidInput("bad"), "request rejected")
	if GetCode(rewrapped) != CodeInvalidInput {
		t.Errorf("code = %s, want %s", GetCode(rewrapped), CodeInvalidInput)
	}

	if Wrap(nil, "noop") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(errors.New("plain")) != "UNKNOWN" {
		t.Error("plain errors must report UNKNOWN")
	}
}
