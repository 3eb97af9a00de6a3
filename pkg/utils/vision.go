package utils

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// SafeSearchVerdict carries the likelihood strings Vision returns,
// e.g. "VERY_UNLIKELY", "LIKELY", "VERY_LIKELY".
type SafeSearchVerdict struct {
	Adult    string
	Violence string
	Racy     string
}

type SafeSearchClientInterface interface {
	Detect(ctx context.Context, imageURL string) (SafeSearchVerdict, error)
}

type VisionSafeSearchClient struct {
	service *vision.Service
}

func NewVisionSafeSearchClient(ctx context.Context, apiKey string) (*VisionSafeSearchClient, error) {
	service, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &VisionSafeSearchClient{service: service}, nil
}

func (c *VisionSafeSearchClient) Detect(ctx context.Context, imageURL string) (SafeSearchVerdict, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Source: &vision.ImageSource{ImageUri: imageURL}},
				Features: []*vision.Feature{{Type: "SAFE_SEARCH_DETECTION"}},
			},
		},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return SafeSearchVerdict{}, fmt.Errorf("safe search annotate failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return SafeSearchVerdict{}, fmt.Errorf("safe search returned no response for %s", imageURL)
	}
	if resp.Responses[0].Error != nil {
		return SafeSearchVerdict{}, fmt.Errorf("safe search error: %s", resp.Responses[0].Error.Message)
	}
	annotation := resp.Responses[0].SafeSearchAnnotation
	if annotation == nil {
		return SafeSearchVerdict{}, fmt.Errorf("safe search returned no annotation for %s", imageURL)
	}

	return SafeSearchVerdict{
		Adult:    annotation.Adult,
		Violence: annotation.Violence,
		Racy:     annotation.Racy,
	}, nil
}
