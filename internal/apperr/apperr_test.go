package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("ingest photo.txt: %w", ErrNotImage)
	if got := KindOf(err); got != KindValidation {
		t.Errorf("kind: got %v, want %v", got, KindValidation)
	}
	if !errors.Is(err, ErrNotImage) {
		t.Error("errors.Is should match sentinel through wrapping")
	}
}

func TestKindOf_Plain(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Errorf("kind: got %v, want unknown", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"sentinel", ErrEngineUnavailable, ErrEngineUnavailable.UserMsg},
		{"validationf", Validationf("CSV must have at least %d rows", 2), "CSV must have at least 2 rows"},
		{"wrapped transient", fmt.Errorf("copy: %w", Transient(errors.New("denied"), "Clipboard unavailable")), "Clipboard unavailable"},
		{"unknown", errors.New("x"), "Something went wrong. Please check your input and try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindDependency.String() != "dependency" {
		t.Errorf("got %q", KindDependency.String())
	}
}
