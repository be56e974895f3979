package consumption

import (
	"net/http"
)

// Client is the entrypoint for talking to the Consumption API. It holds no
// per-request state: endpoint configuration is resolved fresh on every call,
// so a single Client is safe for concurrent use.
//
// Example usage:
//
//	client, err := consumption.New()
//	result, err := consumption.NewClassifyRequest("A kanban board").Do(ctx, client)
type Client struct {
	httpClient *http.Client
	resolver   ConfigResolver
}

// New creates a Client with the given options. By default the endpoint is
// resolved from the CONSUMPTION_API_* environment on each call.
func New(opts ...clientOption) (*Client, error) {
	c := Client{
		resolver: ConfigFromEnv,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if c.resolver == nil {
		return nil, errConfigResolverRequired()
	}

	return &c, nil
}

func (c *Client) config() (Config, error) {
	return c.resolver()
}

func (c *Client) HttpClient() *http.Client {
	if c.httpClient == nil {
		return http.DefaultClient
	}

	return c.httpClient
}
