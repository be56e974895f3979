package consumption_test

import (
	"context"
	"net/http"
	"testing"

	consumption "github.com/consumptionapi/consumption-go"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
)

func TestSyncAll(t *testing.T) {
	defer gock.Off()

	client, _ := consumption.New(consumption.WithConfig(testConfig()))

	gock.New("https://api.example.test").
		Post("/project/classify").
		Times(3).
		Reply(http.StatusOK).
		SetHeader("content-type", "application/json").
		BodyString(`{"template":"vite"}`)

	results := consumption.All(context.Background(), client,
		consumption.NewClassifyRequest("one"),
		consumption.NewClassifyRequest("two"),
		consumption.NewClassifyRequest("three"))

	assert.Len(t, results, 3)

	for _, result := range results {
		assert.Nil(t, result.Error)
		assert.Equal(t, "vite", result.Result.Template)
	}
}

func TestSyncAllPartialFailure(t *testing.T) {
	defer gock.Off()

	client, _ := consumption.New(consumption.WithConfig(testConfig()))

	gock.New("https://api.example.test").
		Post("/project/classify").
		Reply(http.StatusInternalServerError).
		SetHeader("content-type", "application/json").
		BodyString(`{"error":"boom"}`)

	gock.New("https://api.example.test").
		Post("/project/classify").
		Reply(http.StatusOK).
		SetHeader("content-type", "application/json").
		BodyString(`{"template":"vite"}`)

	results := consumption.All(context.Background(), client,
		consumption.NewClassifyRequest("one"),
		consumption.NewClassifyRequest("two"))

	assert.Len(t, results, 2)

	succeeded := 0
	failed := 0

	for _, result := range results {
		if result.Error != nil {
			failed += 1
			continue
		}

		succeeded += 1
		assert.Equal(t, "vite", result.Result.Template)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
}

func TestSyncRace(t *testing.T) {
	defer gock.Off()

	client, _ := consumption.New(consumption.WithConfig(testConfig()))

	gock.New("https://api.example.test").
		Post("/project/classify").
		Times(2).
		Reply(http.StatusOK).
		SetHeader("content-type", "application/json").
		BodyString(`{"template":"astro"}`)

	result := consumption.Race(context.Background(), client,
		consumption.NewClassifyRequest("one"),
		consumption.NewClassifyRequest("two"))

	assert.Nil(t, result.Error)
	assert.Equal(t, "astro", result.Result.Template)
}

func TestSyncRaceNoRequests(t *testing.T) {
	client, _ := consumption.New(consumption.WithConfig(testConfig()))

	result := consumption.Race(context.Background(), client)

	assert.ErrorContains(t, result.Error, "no classify requests to race")
}

func TestSyncRaceAllFailed(t *testing.T) {
	defer gock.Off()

	client, _ := consumption.New(consumption.WithConfig(testConfig()))

	gock.New("https://api.example.test").
		Post("/project/classify").
		Times(2).
		Reply(http.StatusInternalServerError).
		SetHeader("content-type", "application/json").
		BodyString(`{"error":"boom"}`)

	result := consumption.Race(context.Background(), client,
		consumption.NewClassifyRequest("one"),
		consumption.NewClassifyRequest("two"))

	assert.ErrorContains(t, result.Error, "all classify requests failed")
}
