// Package gva downloads and parses the Generalitat Valenciana open-data CSV
// files (dadesobertes.gva.es) used to locate FP cycles and schools.
package gva

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (ProyectoIA-FP/1.0)"

// Fetcher downloads CSV resources over HTTP.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Download returns the body of url. Non-2xx responses are errors.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/csv,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FirstAvailable tries urls in order and returns the first body that downloads,
// together with the url it came from.
func (f *Fetcher) FirstAvailable(ctx context.Context, urls ...string) ([]byte, string, error) {
	if len(urls) == 0 {
		return nil, "", errors.New("no source urls configured")
	}
	var lastErr error
	for _, u := range urls {
		body, err := f.Download(ctx, u)
		if err == nil {
			return body, u, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}
