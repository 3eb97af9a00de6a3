package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizlens/pkg/utils"
)

func headResponder(status int, contentType string, contentLength int64) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, "")
		if contentType != "" {
			resp.Header.Set("Content-Type", contentType)
		}
		resp.ContentLength = contentLength
		return resp, nil
	}
}

func visionOn() *fakeSettingsService {
	return &fakeSettingsService{bools: map[string]bool{SettingVisionModeration: true}}
}

func TestCheckImageFileTooLarge(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/huge.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/jpeg", 11*1024*1024))

	svc := NewModerationService(visionOn(), nil)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "file_too_large", result.Reason)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestCheckImageInvalidContentType(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/page"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "text/html", 1024))

	svc := NewModerationService(visionOn(), nil)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "invalid_content_type", result.Reason)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestCheckImageContentTypeParameters(t *testing.T) {
	// Charset and casing on the header must not fail the type check.
	setupHTTPMock(t)
	url := "https://img.example.com/photo.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "Image/JPEG; charset=utf-8", 1024))

	svc := NewModerationService(visionOn(), nil)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestCheckImageUnknownSizePasses(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/stream.png"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/png", -1))

	svc := NewModerationService(visionOn(), nil)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestCheckImageFlaggedURL(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/nsfw-banner.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/jpeg", 1024))

	svc := NewModerationService(visionOn(), nil)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "flagged_url", result.Reason)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
}

func TestCheckImageSafeSearchVerdicts(t *testing.T) {
	tests := []struct {
		name           string
		verdict        utils.SafeSearchVerdict
		wantPassed     bool
		wantReason     string
		wantConfidence float64
	}{
		{
			name:           "adult likely",
			verdict:        utils.SafeSearchVerdict{Adult: "LIKELY", Violence: "UNLIKELY", Racy: "UNLIKELY"},
			wantPassed:     false,
			wantReason:     "safe_search_adult",
			wantConfidence: 0.8,
		},
		{
			name:           "violence very likely",
			verdict:        utils.SafeSearchVerdict{Adult: "UNLIKELY", Violence: "VERY_LIKELY", Racy: "UNLIKELY"},
			wantPassed:     false,
			wantReason:     "safe_search_violence",
			wantConfidence: 0.95,
		},
		{
			name:           "racy very likely",
			verdict:        utils.SafeSearchVerdict{Adult: "VERY_UNLIKELY", Violence: "POSSIBLE", Racy: "VERY_LIKELY"},
			wantPassed:     false,
			wantReason:     "safe_search_racy",
			wantConfidence: 0.95,
		},
		{
			name:       "all clear",
			verdict:    utils.SafeSearchVerdict{Adult: "VERY_UNLIKELY", Violence: "UNLIKELY", Racy: "POSSIBLE"},
			wantPassed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			url := "https://img.example.com/photo.jpg"
			httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/jpeg", 1024))

			safeSearch := &fakeSafeSearchClient{verdict: tt.verdict}
			svc := NewModerationService(visionOn(), safeSearch)
			result, err := svc.CheckImage(context.Background(), url)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantReason, result.Reason)
			if tt.wantConfidence > 0 {
				assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-9)
			}
			assert.Equal(t, 1, safeSearch.calls)
		})
	}
}

func TestCheckImageSafeSearchErrorFallsBack(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/photo.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/jpeg", 1024))

	safeSearch := &fakeSafeSearchClient{err: errors.New("vision quota exceeded")}
	svc := NewModerationService(visionOn(), safeSearch)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, safeSearch.calls)
}

func TestCheckImageVisionDisabledSkipsSafeSearch(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/photo.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(200, "image/jpeg", 1024))

	settings := &fakeSettingsService{bools: map[string]bool{SettingVisionModeration: false}}
	safeSearch := &fakeSafeSearchClient{verdict: utils.SafeSearchVerdict{Adult: "VERY_LIKELY"}}
	svc := NewModerationService(settings, safeSearch)
	result, err := svc.CheckImage(context.Background(), url)

	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 0, safeSearch.calls)
}

func TestCheckImageTransportError(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/gone.jpg"
	httpmock.RegisterResponder(http.MethodHead, url,
		httpmock.NewErrorResponder(errors.New("connection refused")))

	svc := NewModerationService(visionOn(), nil)
	_, err := svc.CheckImage(context.Background(), url)

	assert.Error(t, err)
}

func TestCheckImageUpstreamErrorStatus(t *testing.T) {
	setupHTTPMock(t)
	url := "https://img.example.com/missing.jpg"
	httpmock.RegisterResponder(http.MethodHead, url, headResponder(404, "", 0))

	svc := NewModerationService(visionOn(), nil)
	_, err := svc.CheckImage(context.Background(), url)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}