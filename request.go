package consumption

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/consumptionapi/consumption-go/internal"
	"github.com/fatih/structs"
	"github.com/samber/lo"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the chat conversation sent to the steps endpoint.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a builder for a call to the chat/steps endpoint.
//
// It is generic in T. When T is not string, a JSONSchema generated from T is
// attached to the request metadata as `response_schema`, and the Json result
// variant can be decoded into T with Get. See
// [this](https://github.com/invopop/jsonschema) for how to annotate the
// structs.
//
// Example usage:
//
//	result, err := consumption.NewChatRequest[Plan]().
//		WithText(consumption.RoleUser, "Scaffold a todo app").
//		Do(ctx, client)
type ChatRequest[T any] struct {
	messages []Message
	metadata map[string]any
}

// NewChatRequest creates a chat request builder typed by T.
func NewChatRequest[T any]() ChatRequest[T] {
	r := ChatRequest[T]{
		metadata: make(map[string]any),
	}

	switch any(*new(T)).(type) {
	case string:
	default:
		r.metadata["response_schema"] = lo.ToPtr(internal.GenerateSchema[T]())
	}

	return r
}

// NewUntypedChatRequest is a helper to create a ChatRequest whose Json
// variant will be kept as a raw string.
func NewUntypedChatRequest() ChatRequest[string] {
	return NewChatRequest[string]()
}

// WithText appends a message to the conversation.
func (r ChatRequest[T]) WithText(role Role, content string) ChatRequest[T] {
	r.messages = append(r.messages, Message{
		Role:    role,
		Content: content,
	})

	return r
}

// WithInstruction adds a system prompt to the request.
func (r ChatRequest[T]) WithInstruction(content string) ChatRequest[T] {
	return r.WithText(RoleSystem, content)
}

// WithMetadata sets one metadata entry on the request. The metadata map is
// cloned, so requests derived from a common base stay independent.
func (r ChatRequest[T]) WithMetadata(key string, value any) ChatRequest[T] {
	r.metadata = maps.Clone(r.metadata)
	r.metadata[key] = value

	return r
}

// WithOptions flattens an options struct into the request metadata. Fields
// use their `structs` tags as metadata keys.
func (r ChatRequest[T]) WithOptions(opts ChatOptions) ChatRequest[T] {
	r.metadata = maps.Clone(r.metadata)

	for key, value := range structs.Map(opts) {
		r.metadata[key] = value
	}

	return r
}

// Do executes the chat request and classifies the response as a stream or a
// JSON document.
func (r ChatRequest[T]) Do(ctx context.Context, c *Client) (*ChatResult[T], error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, cfg, cfg.ChatPath, chatPayload{
		Messages: r.messages,
		Metadata: r.metadata,
	})
	if err != nil {
		return nil, errors.Wrap(err, "chat request failed")
	}

	return dispatchChatResponse[T](resp)
}

// ChatOptions are optional generation parameters forwarded to the upstream
// inside the request metadata.
type ChatOptions struct {
	Model       string   `structs:"model,omitempty"`
	Temperature *float64 `structs:"temperature,omitempty"`
	MaxSteps    *int     `structs:"max_steps,omitempty"`
}

type chatPayload struct {
	Messages []Message      `json:"messages"`
	Metadata map[string]any `json:"metadata"`
}

// ClassifyRequest is a builder for a call to the project classification
// endpoint.
//
// Example usage:
//
//	result, err := consumption.NewClassifyRequest("A kanban board with auth").
//		Do(ctx, client)
type ClassifyRequest struct {
	prompt   string
	metadata map[string]any
}

// NewClassifyRequest creates a classify request for the given prompt.
func NewClassifyRequest(prompt string) ClassifyRequest {
	return ClassifyRequest{
		prompt:   prompt,
		metadata: make(map[string]any),
	}
}

// WithMetadata sets one metadata entry on the request. The metadata map is
// cloned, so requests derived from a common base stay independent.
func (r ClassifyRequest) WithMetadata(key string, value any) ClassifyRequest {
	r.metadata = maps.Clone(r.metadata)
	r.metadata[key] = value

	return r
}

// Do executes the classify request and normalizes the response shape.
func (r ClassifyRequest) Do(ctx context.Context, c *Client) (*ClassifyResult, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, cfg, cfg.ClassifyPath, classifyPayload{
		Prompt:   r.prompt,
		Metadata: r.metadata,
	})
	if err != nil {
		return nil, errors.Wrap(err, "classify request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError(resp)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read classify response body")
	}

	return normalizeClassifyResponse(body)
}

type classifyPayload struct {
	Prompt   string         `json:"prompt"`
	Metadata map[string]any `json:"metadata"`
}

// post issues a JSON POST against the configured endpoint. Extra headers are
// merged last so a deployment can override the defaults, Authorization
// included.
func (c *Client) post(ctx context.Context, cfg Config, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinUrl(cfg.BaseUrl, path), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	req.Header.Set("Content-Type", "application/json")

	if cfg.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.ApiKey)
	}

	for key, value := range cfg.ExtraHeaders {
		req.Header.Set(key, value)
	}

	return c.HttpClient().Do(req)
}
