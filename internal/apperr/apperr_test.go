package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"bad request", BadRequest("nope"), KindBadRequest},
		{"not found", NotFound("gone"), KindNotFound},
		{"conflict", Conflict("taken"), KindConflict},
		{"internal", Internal(errors.New("boom")), KindInternal},
		{"wrapped", fmt.Errorf("saving: %w", NotFound("gone")), KindNotFound},
		{"plain", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	if got := BadRequest("Cannot add more than 5 carriers").Error(); got != "Cannot add more than 5 carriers" {
		t.Errorf("Error() = %q", got)
	}
	cause := errors.New("disk full")
	wrapped := Internal(cause)
	if got := wrapped.Error(); got != "internal error: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Internal does not wrap its cause")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{BadRequest("x"), 400},
		{NotFound("x"), 404},
		{Conflict("x"), 409},
		{Internal(errors.New("x")), 500},
		{errors.New("x"), 500},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
