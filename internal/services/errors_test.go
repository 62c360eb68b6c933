package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mivideo/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrHTTPStatus, "mivideo", "media list", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrHTTPStatus) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"mivideo", "media list", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransport(t *testing.T) {
	err := services.Wrap(nil, "kaltura", "serve", "", errors.New("dial refused"))
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker, got %v", err)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	authErr := services.Wrap(services.ErrAuthentication, "mivideo", "token", "401", nil)
	tokenErr := services.Wrap(services.ErrTokenAcquisition, "mivideo", "token", "500", nil)
	if errors.Is(authErr, services.ErrTokenAcquisition) {
		t.Fatalf("authentication error should not match token acquisition: %v", authErr)
	}
	if errors.Is(tokenErr, services.ErrAuthentication) {
		t.Fatalf("token acquisition error should not match authentication: %v", tokenErr)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := services.WithRequestID(context.Background(), "req-123")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("expected request id round trip, got %q ok=%v", id, ok)
	}
	if _, ok := services.RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected no request id on fresh context")
	}
}
