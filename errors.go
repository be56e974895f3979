package consumption

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrConfiguration marks every failure of the environment configuration
	// resolver: a required setting is missing, or a structured setting does
	// not decode. Raised before any network call.
	ErrConfiguration = errors.New("invalid consumption API configuration")

	// ErrMalformedResponse marks a success response whose body cannot be
	// decoded as JSON.
	ErrMalformedResponse = errors.New("malformed consumption API response")

	// ErrMalformedClassifyResponse marks a classify payload with no usable
	// string `template` field. A missing template is never defaulted.
	ErrMalformedClassifyResponse = errors.New("malformed classify response")
)

const maxErrorBodyBytes = 64 << 10

// UpstreamError is a non-success HTTP status from the Consumption API. It
// carries the status and, best-effort, the response body. The client never
// retries or recovers from it; that is the caller's call.
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e UpstreamError) Error() string {
	msg := fmt.Sprintf("consumption API returned status %d (%s)", e.StatusCode, strings.TrimSpace(e.Status))

	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}

// newUpstreamError builds the error for a non-2xx response. The body is read
// only when the declared content type looks like JSON or text, and a failed
// read never masks the status error: the body is simply omitted.
func newUpstreamError(resp *http.Response) error {
	err := UpstreamError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
	}

	if resp.Body != nil {
		defer resp.Body.Close()

		if isTextualContentType(resp.Header.Get("Content-Type")) {
			if body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes)); readErr == nil {
				err.Body = strings.TrimSpace(string(body))
			}
		}
	}

	return err
}

func statusText(resp *http.Response) string {
	if status := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))); status != "" {
		return status
	}

	return http.StatusText(resp.StatusCode)
}

func isTextualContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)

	return strings.Contains(contentType, "json") || strings.Contains(contentType, "text")
}
