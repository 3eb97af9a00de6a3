package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"bizlens/internal/models/request_models"
	"bizlens/pkg/utils"
)

const convertKitBaseURL = "https://api.convertkit.com/v3"

var ErrNewsletterNotConfigured = errors.New(
	"newsletter signup is not configured. Set CONVERTKIT_API_KEY (account settings > API) " +
		"and CONVERTKIT_FORM_ID (the numeric id in the form URL) and restart")

type NewsletterServiceInterface interface {
	Subscribe(request request_models.SubscribeRequest, ctx context.Context) error
}

type NewsletterService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	formID     string
}

func NewNewsletterService(apiKey, formID string) NewsletterServiceInterface {
	return &NewsletterService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    convertKitBaseURL,
		apiKey:     apiKey,
		formID:     formID,
	}
}

func (n *NewsletterService) Subscribe(request request_models.SubscribeRequest, ctx context.Context) error {
	if n.apiKey == "" || n.formID == "" {
		return ErrNewsletterNotConfigured
	}

	payload := map[string]string{
		"api_key": n.apiKey,
		"email":   request.Email,
	}
	if request.FirstName != "" {
		payload["first_name"] = request.FirstName
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return utils.ErrUpstreamFailed
	}

	endpoint := fmt.Sprintf("%s/forms/%s/subscribe", n.baseURL, n.formID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return utils.ErrUpstreamFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Printf("Error calling ConvertKit: %v", err)
		return utils.ErrUpstreamFailed
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		log.Printf("ConvertKit bad status: %s", resp.Status)
		return utils.ErrUpstreamFailed
	}

	return nil
}
