package googlechart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/httputil"
	"github.com/blueprintmrk/graphy/pkg/render"
)

const imageBackendName = "googlechart-image"

// ImageBackend fetches the rendered image bytes from the Google Chart API.
// Transient failures (timeouts, 5xx responses) are retried with exponential
// backoff; API rejections (4xx) fail immediately. Fetched images are kept
// in a file response cache keyed by chart URL, so re-rendering an unchanged
// chart skips the network entirely.
type ImageBackend struct {
	client   *http.Client
	cache    *httputil.Cache
	attempts int
	delay    time.Duration
}

// imageEntry is the cached form of a fetched image.
type imageEntry struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// NewImage returns an image-fetching backend with a 30 second request
// timeout, three attempts per render, and a day-long response cache in the
// default cache directory. A cache setup failure disables caching rather
// than the backend.
func NewImage() *ImageBackend {
	b := &ImageBackend{
		client:   &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    time.Second,
	}
	if c, err := httputil.NewCache("", 24*time.Hour); err == nil {
		b.cache = c.Namespace("image:")
	}
	return b
}

// WithClient replaces the HTTP client, mainly for tests.
func (b *ImageBackend) WithClient(client *http.Client) *ImageBackend {
	b.client = client
	return b
}

// WithCache replaces the response cache. A nil cache disables caching.
func (b *ImageBackend) WithCache(c *httputil.Cache) *ImageBackend {
	b.cache = c
	return b
}

func (*ImageBackend) Name() string { return imageBackendName }

// Render implements render.Backend.
func (b *ImageBackend) Render(ctx context.Context, c *chart.Chart, opts render.Options) (chart.Artifact, error) {
	u, err := URL(c, opts)
	if err != nil {
		return chart.Artifact{}, err
	}

	if b.cache != nil {
		var entry imageEntry
		if ok, err := b.cache.Get(u, &entry); ok && err == nil {
			return chart.Artifact{ContentType: entry.ContentType, Data: entry.Data}, nil
		}
	}

	var artifact chart.Artifact
	err = httputil.Retry(ctx, b.attempts, b.delay, func() error {
		got, err := b.fetch(ctx, u)
		if err != nil {
			return err
		}
		artifact = got
		return nil
	})
	if err != nil {
		return chart.Artifact{}, &render.Error{Backend: imageBackendName, Cause: err}
	}

	if b.cache != nil {
		// A write failure only costs a refetch next time.
		_ = b.cache.Set(u, imageEntry{ContentType: artifact.ContentType, Data: artifact.Data})
	}
	return artifact, nil
}

func (b *ImageBackend) fetch(ctx context.Context, u string) (chart.Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return chart.Artifact{}, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return chart.Artifact{}, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return chart.Artifact{}, &httputil.RetryableError{
			Err: fmt.Errorf("chart API returned %s", resp.Status),
		}
	case resp.StatusCode != http.StatusOK:
		return chart.Artifact{}, fmt.Errorf("chart API returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chart.Artifact{}, &httputil.RetryableError{Err: err}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return chart.Artifact{ContentType: contentType, Data: data}, nil
}
