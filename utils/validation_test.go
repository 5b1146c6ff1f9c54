package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestSanitizeValidationErrorNil(t *testing.T) {
	if got := SanitizeValidationError(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}
}

func TestSanitizeValidationErrorNonValidator(t *testing.T) {
	got := SanitizeValidationError(errors.New("unexpected EOF"))
	if got != "Invalid request body" {
		t.Errorf("parser internals must not leak, got %q", got)
	}
}

func TestSanitizeValidationErrorFields(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	v := validator.New()
	err := v.Struct(payload{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("expected email message, got %q", msg)
	}
	if !strings.Contains(msg, "password must be at least 8") {
		t.Errorf("expected password message, got %q", msg)
	}
}
