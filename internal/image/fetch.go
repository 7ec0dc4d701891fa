// Package image downloads and validates image payloads for the QA
// endpoints before any provider is called.
package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kaleido-ai/kaleido/internal/config"
	"github.com/kaleido-ai/kaleido/internal/domain"
)

// Payload is a validated image ready for the pipeline.
type Payload struct {
	Data        []byte
	ContentType string
}

// Fetcher downloads images from user-supplied URLs with a bounded size
// and timeout.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewFetcher creates a fetcher honoring the upload limits.
func NewFetcher(cfg *config.UploadConfig) *Fetcher {
	timeout := time.Duration(cfg.FetchTimeout) * time.Second
	if cfg.FetchTimeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   cfg.MaxFileSizeBytes(),
	}
}

// Fetch downloads the image at url. Any validation failure is returned as
// an invalid_input provider error so the handler can reject it before the
// chain runs.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Payload, error) {
	if url == "" {
		return nil, invalidInput(errors.New("image URL is required"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, invalidInput(fmt.Errorf("invalid image URL: %w", err))
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, invalidInput(fmt.Errorf("failed to download image: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, invalidInput(fmt.Errorf("image URL returned status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !config.IsImageTypeAllowed(contentType) {
		return nil, invalidInput(fmt.Errorf("URL does not point to a valid image (content type %q)", contentType))
	}

	data, err := ReadLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, err
	}

	return &Payload{Data: data, ContentType: contentType}, nil
}

// ReadLimited reads at most maxBytes from r, rejecting larger payloads.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, invalidInput(fmt.Errorf("failed to read image data: %w", err))
	}
	if int64(len(data)) > maxBytes {
		return nil, invalidInput(fmt.Errorf("image exceeds the %d byte limit", maxBytes))
	}
	if len(data) == 0 {
		return nil, invalidInput(errors.New("image data is empty"))
	}
	return data, nil
}

// Sniff validates uploaded bytes and returns their detected content type.
func Sniff(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !config.IsImageTypeAllowed(contentType) {
		return "", invalidInput(fmt.Errorf("unsupported image format %q", contentType))
	}
	return contentType, nil
}

func invalidInput(err error) error {
	return domain.NewProviderError(domain.ErrorKindInvalidInput, "input", err)
}
