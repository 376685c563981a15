package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// fetchJSON performs a GET against a registry endpoint and decodes the JSON
// body. Every failure mode is mapped onto the FetchError taxonomy so nothing
// leaks across the aggregator boundary untyped.
func fetchJSON(ctx context.Context, client *http.Client, source Source, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewFetchError(FetchUnreachable, source, "build request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return NewFetchError(FetchTimeout, source, "request timed out", err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return NewFetchError(FetchTimeout, source, "request timed out", err)
		}
		return NewFetchError(FetchUnreachable, source, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewFetchError(FetchRateLimited, source, "registry rate limit exceeded", nil)
	case resp.StatusCode >= 500:
		return NewFetchError(FetchUnreachable, source, fmt.Sprintf("registry returned %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return NewFetchError(FetchInvalidResponse, source, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewFetchError(FetchInvalidResponse, source, "decode response body", err)
	}
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// mockSeed derives a stable small integer from an identifier so mock clients
// return deterministic data per vendor without sharing state.
func mockSeed(identifier string) int {
	seed := 0
	for _, r := range identifier {
		seed = (seed*31 + int(r)) % 9973
	}
	return seed
}
