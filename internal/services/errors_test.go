package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "schedule", "load", "talk_title is required", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	want := "validation error: schedule: load: talk_title is required"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(ErrTransient, "fetch", "download", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient default, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", Wrap(ErrValidation, "a", "b", "c", nil), false},
		{"not found", Wrap(ErrNotFound, "fetch", "download", "missing", nil), false},
		{"permission", ErrPermission, false},
		{"rate limited", Wrap(ErrRateLimited, "fetch", "download", "", nil), true},
		{"transient", Wrap(ErrTransient, "fetch", "download", "", nil), true},
		{"plain", errors.New("boom"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.err); got != tc.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
