// Package vision talks to the annotation service that turns chart
// screenshots into labeled elements.
package vision

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "chartpilot/internal/errors"
	"chartpilot/internal/models"
)

const collaboratorName = "omniparser"

// ParseResult is the annotation service output: the ordered element list
// and, optionally, the annotated image for journaling.
type ParseResult struct {
	Elements       []models.RawElement `json:"elements"`
	AnnotatedImage string              `json:"annotated_image,omitempty"`
}

// Client is an HTTP client for the annotation service.
type Client struct {
	http *resty.Client
}

// NewClient creates a vision client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type parseRequest struct {
	Image string `json:"image"`
}

// Parse submits a base64-encoded screenshot and returns the annotated
// elements. Failures come back as UpstreamError so the caller can degrade
// to an empty snapshot.
func (c *Client) Parse(ctx context.Context, imageBase64 string) (*ParseResult, error) {
	var result ParseResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(parseRequest{Image: imageBase64}).
		SetResult(&result).
		Post("/parse/")
	if err != nil {
		return nil, apperrors.NewUpstreamError(collaboratorName, err)
	}
	if resp.IsError() {
		return nil, apperrors.NewUpstreamError(collaboratorName,
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}
	return &result, nil
}
