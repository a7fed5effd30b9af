package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const userAgent = "Mozilla/5.0 (compatible; naishad-media/1.0)"

// Fetch downloads a remote image and stores it like an upload. Values that
// already point into this store are returned unchanged.
func (s *Store) Fetch(ctx context.Context, url string, opts Options) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("image URL is empty")
	}
	if _, ok := s.LocalPath(url); ok {
		return url, nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("unsupported image URL %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: content type %s", ErrNotImage, ct)
	}
	if resp.ContentLength > opts.MaxBytes {
		return "", ErrTooLarge
	}

	return s.Save(resp.Body, opts)
}
