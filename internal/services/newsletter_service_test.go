package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizlens/internal/models/request_models"
	"bizlens/pkg/utils"
)

const convertKitTestURL = "https://api.convertkit.com/v3/forms/4242/subscribe"

func TestSubscribeNotConfigured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		formID string
	}{
		{name: "no api key", apiKey: "", formID: "4242"},
		{name: "no form id", apiKey: "ck-key", formID: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewNewsletterService(tt.apiKey, tt.formID)
			err := svc.Subscribe(request_models.SubscribeRequest{Email: "a@example.com"}, context.Background())
			assert.ErrorIs(t, err, ErrNewsletterNotConfigured)
		})
	}
}

func TestSubscribeSendsFormPayload(t *testing.T) {
	setupHTTPMock(t)

	var captured map[string]string
	httpmock.RegisterResponder("POST", convertKitTestURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(200, map[string]interface{}{
				"subscription": map[string]interface{}{"id": 1},
			})
		})

	svc := NewNewsletterService("ck-key", "4242")
	err := svc.Subscribe(request_models.SubscribeRequest{
		Email:     "reader@example.com",
		FirstName: "Sam",
	}, context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ck-key", captured["api_key"])
	assert.Equal(t, "reader@example.com", captured["email"])
	assert.Equal(t, "Sam", captured["first_name"])
}

func TestSubscribeOmitsEmptyFirstName(t *testing.T) {
	setupHTTPMock(t)

	var captured map[string]string
	httpmock.RegisterResponder("POST", convertKitTestURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(200, `{}`), nil
		})

	svc := NewNewsletterService("ck-key", "4242")
	err := svc.Subscribe(request_models.SubscribeRequest{Email: "reader@example.com"}, context.Background())

	require.NoError(t, err)
	_, present := captured["first_name"]
	assert.False(t, present)
}

func TestSubscribeUpstreamRejection(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("POST", convertKitTestURL,
		httpmock.NewStringResponder(422, `{"error":"invalid email"}`))

	svc := NewNewsletterService("ck-key", "4242")
	err := svc.Subscribe(request_models.SubscribeRequest{Email: "bad"}, context.Background())
	assert.ErrorIs(t, err, utils.ErrUpstreamFailed)
}

func TestSubscribeTransportFailure(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("POST", convertKitTestURL,
		httpmock.NewErrorResponder(errors.New("dial tcp: connection refused")))

	svc := NewNewsletterService("ck-key", "4242")
	err := svc.Subscribe(request_models.SubscribeRequest{Email: "reader@example.com"}, context.Background())
	assert.ErrorIs(t, err, utils.ErrUpstreamFailed)
}