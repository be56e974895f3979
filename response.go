package consumption

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// ResultKind discriminates the two chat result variants.
type ResultKind string

const (
	// KindStream is a passthrough of the raw response body.
	KindStream ResultKind = "stream"
	// KindJson is a fully parsed JSON document.
	KindJson ResultKind = "json"
)

// Content types the upstream uses for incremental transfer. Matching is a
// case-insensitive substring check, which is the full contract: the upstream
// does not guarantee strict MIME parameters, so `text/event-stream;
// charset=utf-8` matches like the bare type does.
var streamingContentTypes = []string{
	"text/event-stream",
	"application/x-ndjson",
	"text/plain",
}

// ChatResult is the outcome of a chat request. Exactly one variant is
// populated, decided once when the response headers are inspected and never
// re-evaluated.
//
// It is generic in T, which Get uses to unmarshal the Json variant, following
// the same convention as typed requests.
type ChatResult[T any] struct {
	// Kind tells which variant is populated.
	Kind ResultKind

	// Stream carries the unread response body when Kind is KindStream.
	Stream *ChatStream

	data json.RawMessage
}

// Raw returns the parsed JSON document of a Json result.
func (r ChatResult[T]) Raw() json.RawMessage {
	return r.data
}

// Get decodes the Json variant into T. When T is string, the raw JSON text is
// returned as-is. Calling Get on a Stream result is an error: the body is
// lazy and must be consumed through the Stream variant.
func (r ChatResult[T]) Get() (T, error) {
	if r.Kind != KindJson {
		return *new(T), errors.New("chat result is a stream, consume it through Stream")
	}

	switch any(*new(T)).(type) {
	case string:
		return any(string(r.data)).(T), nil

	default:
		output := new(T)

		if err := json.Unmarshal(r.data, output); err != nil {
			return *new(T), errors.Wrap(err, "failed to decode response to schema")
		}

		return *output, nil
	}
}

// dispatchChatResponse classifies a chat response as stream-passthrough or
// parse-as-JSON.
//
// Non-success statuses fail immediately with an UpstreamError, without any
// shape classification. On success, a streaming content type hands the body
// off untouched: the dispatcher never buffers it and never frames events or
// lines, that is the caller's job. Anything else is drained and parsed as
// JSON, and a parse failure is a hard error. The body is consumed exactly
// once, by whichever of the two paths is taken.
func dispatchChatResponse[T any](resp *http.Response) (*ChatResult[T], error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(resp)
	}

	contentType := resp.Header.Get("Content-Type")

	if resp.Body != nil && isStreamingContentType(contentType) {
		return &ChatResult[T]{
			Kind: KindStream,
			Stream: &ChatStream{
				resp:        resp,
				contentType: contentType,
			},
		}, nil
	}

	var body []byte

	if resp.Body != nil {
		defer resp.Body.Close()

		buf, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read chat response body")
		}

		body = buf
	}

	var parsed any

	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(errors.Mark(errors.Newf("chat response is not valid JSON: %v", err), ErrMalformedResponse), "failed to parse chat response")
	}

	return &ChatResult[T]{
		Kind: KindJson,
		data: json.RawMessage(body),
	}, nil
}

func isStreamingContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)

	for _, streaming := range streamingContentTypes {
		if strings.Contains(contentType, streaming) {
			return true
		}
	}

	return false
}
