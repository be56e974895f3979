package consumption

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	httpClient := &http.Client{}

	client, err := New()

	assert.Nil(t, err)
	assert.Equal(t, http.DefaultClient, client.HttpClient())

	client, err = New(WithHttpClient(httpClient))

	assert.Nil(t, err)
	assert.Equal(t, httpClient, client.HttpClient())

	client, err = New(WithConfig(Config{BaseUrl: "https://api.example.test"}))

	assert.Nil(t, err)

	cfg, err := client.config()

	assert.Nil(t, err)
	assert.Equal(t, "https://api.example.test", cfg.BaseUrl)
}

func TestNilConfigResolver(t *testing.T) {
	client, err := New(WithConfigResolver(nil))

	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Nil(t, client)
}
