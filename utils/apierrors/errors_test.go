package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	apiErr := Wrap(KindNetwork, "flow_alerts", "request failed", cause)

	if !errors.Is(apiErr, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}

	wrapped := fmt.Errorf("outer: %w", apiErr)
	var back *APIError
	if !errors.As(wrapped, &back) {
		t.Fatal("APIError not recoverable through wrapping")
	}
	if back.Kind != KindNetwork || back.Endpoint != "flow_alerts" {
		t.Fatalf("got %+v", back)
	}
}

func TestIsKindAndKindOf(t *testing.T) {
	apiErr := New(KindRateLimit, "news_headlines", "rate limit exceeded")

	if !IsKind(apiErr, KindRateLimit) {
		t.Fatal("IsKind missed matching kind")
	}
	if IsKind(apiErr, KindTimeout) {
		t.Fatal("IsKind matched wrong kind")
	}
	if IsKind(nil, KindTimeout) {
		t.Fatal("IsKind matched nil")
	}
	if IsKind(errors.New("plain"), KindTimeout) {
		t.Fatal("IsKind matched plain error")
	}

	if KindOf(apiErr) != KindRateLimit {
		t.Fatalf("KindOf = %s", KindOf(apiErr))
	}
	if KindOf(errors.New("plain")) != KindRemote {
		t.Fatal("plain errors default to REMOTE")
	}
}

func TestErrorMessageFormat(t *testing.T) {
	apiErr := New(KindAuthentication, "ticker_info", "invalid or missing API token")
	want := "[AUTHENTICATION][ticker_info] invalid or missing API token"
	if apiErr.Error() != want {
		t.Fatalf("got %q", apiErr.Error())
	}
}
