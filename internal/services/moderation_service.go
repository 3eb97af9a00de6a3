package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"bizlens/pkg/utils"
)

const maxImageBytes = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var flaggedURLFragments = []string{"inappropriate", "nsfw", "explicit", "xxx"}

// ImageCheckResult is the verdict for a single image URL. Confidence reflects
// how certain the failed check is, 1.0 for hard limits.
type ImageCheckResult struct {
	Passed     bool    `json:"passed"`
	Reason     string  `json:"reason,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

type ModerationServiceInterface interface {
	CheckImage(ctx context.Context, url string) (ImageCheckResult, error)
}

type ModerationService struct {
	httpClient *http.Client
	safeSearch utils.SafeSearchClientInterface
	settings   SettingsServiceInterface
}

// NewModerationService builds the image check pipeline. safeSearch may be nil
// when no Vision credentials are configured; checks then fall back to URL
// heuristics.
func NewModerationService(settings SettingsServiceInterface, safeSearch utils.SafeSearchClientInterface) ModerationServiceInterface {
	return &ModerationService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		safeSearch: safeSearch,
		settings:   settings,
	}
}

// CheckImage runs the pipeline: size, content type, then either SafeSearch or
// basic URL heuristics. A transport failure is returned as an error so the
// caller can record it without flipping the image.
func (m *ModerationService) CheckImage(ctx context.Context, url string) (ImageCheckResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ImageCheckResult{}, fmt.Errorf("build HEAD request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return ImageCheckResult{}, fmt.Errorf("HEAD %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ImageCheckResult{}, fmt.Errorf("HEAD %s: status %d", url, resp.StatusCode)
	}

	// Unknown size passes; the type check still runs.
	if resp.ContentLength > maxImageBytes {
		return ImageCheckResult{Passed: false, Reason: "file_too_large", Confidence: 1.0}, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if !allowedImageTypes[contentType] {
		return ImageCheckResult{Passed: false, Reason: "invalid_content_type", Confidence: 1.0}, nil
	}

	if m.safeSearch != nil && m.settings.GetBool(ctx, SettingVisionModeration, false) {
		result, err := m.checkSafeSearch(ctx, url)
		if err != nil {
			// SafeSearch outage should not block uploads; fall back to the
			// basic checks like an unconfigured deployment would.
			log.Printf("SafeSearch check failed for %s: %v", url, err)
			return m.checkBasicContent(url), nil
		}
		return result, nil
	}

	return m.checkBasicContent(url), nil
}

func (m *ModerationService) checkSafeSearch(ctx context.Context, url string) (ImageCheckResult, error) {
	verdict, err := m.safeSearch.Detect(ctx, url)
	if err != nil {
		return ImageCheckResult{}, err
	}

	categories := []struct {
		name       string
		likelihood string
	}{
		{"adult", verdict.Adult},
		{"violence", verdict.Violence},
		{"racy", verdict.Racy},
	}
	for _, c := range categories {
		switch c.likelihood {
		case "LIKELY":
			return ImageCheckResult{Passed: false, Reason: "safe_search_" + c.name, Confidence: 0.8}, nil
		case "VERY_LIKELY":
			return ImageCheckResult{Passed: false, Reason: "safe_search_" + c.name, Confidence: 0.95}, nil
		}
	}
	return ImageCheckResult{Passed: true}, nil
}

func (m *ModerationService) checkBasicContent(url string) ImageCheckResult {
	lowered := strings.ToLower(url)
	for _, fragment := range flaggedURLFragments {
		if strings.Contains(lowered, fragment) {
			return ImageCheckResult{Passed: false, Reason: "flagged_url", Confidence: 0.7}
		}
	}
	return ImageCheckResult{Passed: true}
}
