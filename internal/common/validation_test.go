package common

import (
	"context"
	"strings"
	"testing"
)

func TestValidator_CollectsErrors(t *testing.T) {
	v := NewValidator()
	v.Field("path", "", Required)
	v.Field("department", "Spa", KnownDepartment)
	v.Field("start", "14-03-2025", ISODate)
	v.Field("period", "hourly", Period)

	if !v.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if got := len(v.Errors()); got != 4 {
		t.Fatalf("errors = %d, want 4", got)
	}

	err := v.Error()
	if err == nil {
		t.Fatal("Error() = nil with pending errors")
	}
	if !IsInvalidInput(err) {
		t.Error("validator errors should map to invalid input")
	}
	for _, field := range []string{"path", "department", "start", "period"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("combined message missing field %q: %s", field, err)
		}
	}
}

func TestValidator_PassesCleanInput(t *testing.T) {
	v := NewValidator()
	v.Field("path", "report.csv", Required)
	v.Field("department", "Front Office", Required, KnownDepartment)
	v.Field("start", "2025-03-14", Required, ISODate)
	v.Field("period", "Weekly", Period)

	if v.HasErrors() {
		t.Fatalf("unexpected errors: %s", v.ErrorMessage())
	}
	if err := v.Error(); err != nil {
		t.Fatalf("Error() = %v, want nil", err)
	}
}

func TestIsInvalidInput(t *testing.T) {
	if !IsInvalidInput(InvalidInputError("bad")) {
		t.Error("InvalidInputError not recognized")
	}
	if !IsInvalidInput(InvalidInputErrorf("bad %s", "value")) {
		t.Error("InvalidInputErrorf not recognized")
	}
	if IsInvalidInput(StoreError("writing", context.Canceled)) {
		t.Error("store errors must not read as invalid input")
	}
	if IsInvalidInput(nil) {
		t.Error("nil is not invalid input")
	}
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context request id = %q", got)
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithRunID(ctx, "run-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("request id = %q", got)
	}
	if got := RunIDFromContext(ctx); got != "run-1" {
		t.Errorf("run id = %q", got)
	}
}
