// Package vision wraps the Google Cloud Vision API for OCR on invitation
// images.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// Client wraps the Vision API image annotation service.
type Client struct {
	service *vision.Service
}

// NewClientFromCredentialsFile creates a Vision client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, vision.CloudVisionScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	svc, err := vision.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Vision client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := vision.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &Client{service: svc}, nil
}

// DetectText runs TEXT_DETECTION on raw image bytes and returns the full
// recognized text. An image with no detectable text yields "" with no
// error.
func (c *Client) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to annotate image: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("empty annotation response")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return "", fmt.Errorf("vision api error: %s", annotation.Error.Message)
	}
	if annotation.FullTextAnnotation != nil {
		return annotation.FullTextAnnotation.Text, nil
	}
	if len(annotation.TextAnnotations) > 0 {
		return annotation.TextAnnotations[0].Description, nil
	}
	return "", nil
}
