package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "failed to fetch products")

	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "DEPENDENCY_ERROR: failed to fetch products" {
		t.Fatalf("unexpected Error() rendering: %q", got)
	}
}

func TestAsUnwrapsThroughFmt(t *testing.T) {
	inner := New(CodeNotFound, "item not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected As to find the coded error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("expected nil for plain error, got %+v", typed)
	}
	if typed := As(nil); typed != nil {
		t.Fatalf("expected nil for nil error, got %+v", typed)
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestDisplayMessage(t *testing.T) {
	if got := DisplayMessage(nil, "Failed to load cart"); got != "Failed to load cart" {
		t.Fatalf("expected fallback for nil error, got %q", got)
	}

	coded := New(CodeDependency, "failed to fetch products")
	if got := DisplayMessage(coded, "Failed to load cart"); got != "failed to fetch products" {
		t.Fatalf("expected coded message, got %q", got)
	}

	plain := stdErrors.New("boom")
	if got := DisplayMessage(plain, "Failed to load cart"); got != "boom" {
		t.Fatalf("expected plain message, got %q", got)
	}

	empty := New(CodeInternal, "")
	if got := DisplayMessage(empty, "Failed to add item"); got != "Failed to add item" {
		t.Fatalf("expected fallback for empty coded message, got %q", got)
	}
}
