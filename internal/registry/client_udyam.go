package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// UdyamClient verifies small-business (MSME) registration for a GSTIN.
type UdyamClient interface {
	Fetch(ctx context.Context, gstin string) (*UdyamRecord, error)
}

// HTTPUdyamClient talks to the Udyam portal verification API.
type HTTPUdyamClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPUdyamClient(baseURL string, timeout time.Duration) *HTTPUdyamClient {
	return &HTTPUdyamClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (c *HTTPUdyamClient) Fetch(ctx context.Context, gstin string) (*UdyamRecord, error) {
	var record UdyamRecord
	url := fmt.Sprintf("%s/verify/%s", c.baseURL, gstin)
	if err := fetchJSON(ctx, c.client, SourceUdyam, url, &record); err != nil {
		return nil, err
	}
	record.FetchedAt = time.Now().UTC()
	return &record, nil
}

// MockUdyamClient returns deterministic MSME data derived from the GSTIN.
type MockUdyamClient struct {
	Latency time.Duration
	Fail    *FetchError
}

func (c MockUdyamClient) Fetch(ctx context.Context, gstin string) (*UdyamRecord, error) {
	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, NewFetchError(FetchTimeout, SourceUdyam, "mock fetch cancelled", ctx.Err())
	}
	if c.Fail != nil {
		return nil, c.Fail
	}

	seed := mockSeed(gstin)
	categories := []string{"Micro", "Small", "Medium", ""}
	return &UdyamRecord{
		GSTIN:            gstin,
		UdyamRegistered:  seed%2 == 0,
		MSMECategory:     categories[seed%len(categories)],
		RegistrationDate: time.Now().Format("2006-01-02"),
		FetchedAt:        time.Now().UTC(),
	}, nil
}
