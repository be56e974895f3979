package consumption

import (
	"io"
	"net/http"

	"github.com/openai/openai-go/packages/ssestream"
	"github.com/simonfrey/jsonl"
)

// ChatStream is the stream-passthrough variant of a chat result. It wraps the
// unread response body: nothing has been buffered or framed, and the bytes
// can be consumed exactly once, at the caller's pace. Backpressure and
// connection teardown stay with the underlying transport.
type ChatStream struct {
	resp        *http.Response
	contentType string
}

// ContentType returns the content type declared by the upstream, verbatim,
// including any MIME parameters.
func (s *ChatStream) ContentType() string {
	return s.contentType
}

// Read reads raw bytes from the response body.
func (s *ChatStream) Read(p []byte) (int, error) {
	return s.resp.Body.Read(p)
}

// Close releases the underlying connection. Callers that do not drain the
// stream should close it.
func (s *ChatStream) Close() error {
	return s.resp.Body.Close()
}

// Events frames the stream as server-sent events. It is an opt-in helper for
// `text/event-stream` bodies; the caller decides whether framing applies.
func (s *ChatStream) Events() ssestream.Decoder {
	return ssestream.NewDecoder(s.resp)
}

// Lines frames the stream as newline-delimited JSON, for
// `application/x-ndjson` bodies. Decode records with ReadSingleLine, which
// reports a scanner-done error (not io.EOF) once the stream is exhausted.
func (s *ChatStream) Lines() jsonl.Reader {
	return jsonl.NewReader(s.resp.Body)
}

// Text drains the remaining stream into a string. This defeats the purpose
// of streaming and exists for `text/plain` bodies small enough to buffer.
func (s *ChatStream) Text() (string, error) {
	defer s.resp.Body.Close()

	buf, err := io.ReadAll(s.resp.Body)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}
