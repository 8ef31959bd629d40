package uwapi

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/study-flamingo/unusualwhales-mcp/internal/infrastructure/metrics"
	"github.com/study-flamingo/unusualwhales-mcp/utils/apierrors"
)

// classifyStatus maps a non-2xx upstream response to an APIError kind.
// The body is carried on REMOTE errors so callers can surface whatever
// diagnostic the API returned.
func classifyStatus(ep Endpoint, status int, body string) *apierrors.APIError {
	var apiErr *apierrors.APIError
	switch status {
	case 401:
		apiErr = apierrors.New(apierrors.KindAuthentication, ep.Name, "invalid or missing API token")
	case 404:
		apiErr = apierrors.New(apierrors.KindNotFound, ep.Name, "resource not found")
	case 429:
		apiErr = apierrors.New(apierrors.KindRateLimit, ep.Name, "rate limit exceeded")
	default:
		apiErr = apierrors.New(apierrors.KindRemote, ep.Name, fmt.Sprintf("upstream returned status %d", status))
	}
	apiErr.Status = status
	apiErr.Body = body
	metrics.RecordAPIError(ep.Name, string(apiErr.Kind))
	return apiErr
}

// classifyTransport maps a failed round trip to TIMEOUT or NETWORK.
// Deadline expiry and net-level timeouts both count as TIMEOUT; every
// other transport failure is NETWORK.
func classifyTransport(ep Endpoint, target string, err error) *apierrors.APIError {
	kind := apierrors.KindNetwork
	message := fmt.Sprintf("request to %s failed", target)

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = apierrors.KindTimeout
		message = "request timed out"
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = apierrors.KindTimeout
		message = "request timed out"
	}

	apiErr := apierrors.Wrap(kind, ep.Name, message, err)
	metrics.RecordAPIError(ep.Name, string(kind))
	return apiErr
}
