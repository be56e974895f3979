package consumption

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

type clientOption func(*Client)

// WithHttpClient overrides the *http.Client used for outbound requests.
func WithHttpClient(httpClient *http.Client) clientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithConfig pins a fixed endpoint configuration instead of resolving the
// environment on each call.
func WithConfig(cfg Config) clientOption {
	return func(c *Client) {
		c.resolver = func() (Config, error) {
			return cfg, nil
		}
	}
}

// WithConfigResolver injects a custom configuration source.
func WithConfigResolver(resolver ConfigResolver) clientOption {
	return func(c *Client) {
		c.resolver = resolver
	}
}

func errConfigResolverRequired() error {
	return errors.Mark(errors.New("a configuration resolver is required"), ErrConfiguration)
}
