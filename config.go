package consumption

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvBaseUrl      = "CONSUMPTION_API_URL"
	EnvApiKey       = "CONSUMPTION_API_KEY"
	EnvChatPath     = "CONSUMPTION_API_CHAT_PATH"
	EnvClassifyPath = "CONSUMPTION_API_CLASSIFY_PATH"
	EnvHeadersJson  = "CONSUMPTION_API_HEADERS_JSON"
)

const (
	defaultChatPath     = "/chat/steps"
	defaultClassifyPath = "/project/classify"
)

// Config describes the Consumption API endpoint for one call. It is a value
// object: built fresh on every request, never mutated and never shared.
type Config struct {
	// BaseUrl is the API root, without a trailing slash.
	BaseUrl string
	// ApiKey, when set, is sent as a bearer token.
	ApiKey string

	ChatPath     string
	ClassifyPath string

	// ExtraHeaders are merged into the request after the defaults, so they can
	// override Content-Type and Authorization.
	ExtraHeaders map[string]string
}

// ConfigResolver produces the endpoint configuration for a single call.
type ConfigResolver func() (Config, error)

// ConfigFromEnv builds a Config from the CONSUMPTION_API_* environment
// variables. The base URL is required, everything else optional. Header
// overrides are read from a JSON object in CONSUMPTION_API_HEADERS_JSON;
// values that are not strings are dropped.
func ConfigFromEnv() (Config, error) {
	base := strings.TrimSpace(os.Getenv(EnvBaseUrl))
	if base == "" {
		return Config{}, errors.Mark(errors.Newf("%s is not set", EnvBaseUrl), ErrConfiguration)
	}

	cfg := Config{
		BaseUrl:      strings.TrimRight(base, "/"),
		ApiKey:       os.Getenv(EnvApiKey),
		ChatPath:     defaultChatPath,
		ClassifyPath: defaultClassifyPath,
	}

	if path := os.Getenv(EnvChatPath); path != "" {
		cfg.ChatPath = path
	}
	if path := os.Getenv(EnvClassifyPath); path != "" {
		cfg.ClassifyPath = path
	}

	if raw, ok := os.LookupEnv(EnvHeadersJson); ok && strings.TrimSpace(raw) != "" {
		headers, err := parseHeaderMap(raw)
		if err != nil {
			return Config{}, err
		}

		cfg.ExtraHeaders = headers
	}

	return cfg, nil
}

func parseHeaderMap(raw string) (map[string]string, error) {
	if !gjson.Valid(raw) {
		return nil, errors.Mark(errors.Newf("%s is not valid JSON", EnvHeadersJson), ErrConfiguration)
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, errors.Mark(errors.Newf("%s must be a JSON object", EnvHeadersJson), ErrConfiguration)
	}

	headers := make(map[string]string)

	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			headers[key.String()] = value.String()
		}

		return true
	})

	return headers, nil
}

// joinUrl joins the endpoint path to the base URL with exactly one slash
// between them, whatever the configured path looks like.
func joinUrl(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
