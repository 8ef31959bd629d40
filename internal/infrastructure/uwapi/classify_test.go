package uwapi

import (
	"context"
	"errors"
	"testing"

	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantKind apierrors.Kind
	}{
		{401, apierrors.KindAuthentication},
		{404, apierrors.KindNotFound},
		{429, apierrors.KindRateLimit},
		{500, apierrors.KindRemote},
		{502, apierrors.KindRemote},
		{400, apierrors.KindRemote},
	}

	for _, tt := range tests {
		apiErr := classifyStatus(CongressTrades, tt.status, "body text")
		if apiErr.Kind != tt.wantKind {
			t.Fatalf("status %d: kind = %s, want %s", tt.status, apiErr.Kind, tt.wantKind)
		}
		if apiErr.Status != tt.status {
			t.Fatalf("status %d: Status = %d", tt.status, apiErr.Status)
		}
		if apiErr.Endpoint != "congress_trades" {
			t.Fatalf("status %d: Endpoint = %s", tt.status, apiErr.Endpoint)
		}
		if apiErr.Body != "body text" {
			t.Fatalf("status %d: body not carried", tt.status)
		}
	}
}

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apierrors.Kind
	}{
		{"net timeout", &fakeNetError{timeout: true}, apierrors.KindTimeout},
		{"deadline exceeded", context.DeadlineExceeded, apierrors.KindTimeout},
		{"connection refused", &fakeNetError{timeout: false}, apierrors.KindNetwork},
		{"plain error", errors.New("dial failed"), apierrors.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := classifyTransport(FlowAlerts, "https://example.test/api", tt.err)
			if apiErr.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", apiErr.Kind, tt.wantKind)
			}
			if !errors.Is(apiErr, tt.err) {
				t.Fatal("cause not wrapped")
			}
		})
	}
}

func TestTimeoutAndNetworkAreDistinct(t *testing.T) {
	timeoutErr := classifyTransport(FlowAlerts, "https://example.test", &fakeNetError{timeout: true})
	networkErr := classifyTransport(FlowAlerts, "https://example.test", &fakeNetError{timeout: false})

	if apierrors.IsKind(timeoutErr, apierrors.KindNetwork) {
		t.Fatal("timeout classified as network")
	}
	if apierrors.IsKind(networkErr, apierrors.KindTimeout) {
		t.Fatal("network classified as timeout")
	}
}
