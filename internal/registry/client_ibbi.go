package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// IBBIClient checks whether an entity is under insolvency proceedings.
type IBBIClient interface {
	Fetch(ctx context.Context, pan string) (*IBBIRecord, error)
}

// HTTPIBBIClient talks to the IBBI/NCLT case API.
type HTTPIBBIClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPIBBIClient(baseURL string, timeout time.Duration) *HTTPIBBIClient {
	return &HTTPIBBIClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (c *HTTPIBBIClient) Fetch(ctx context.Context, pan string) (*IBBIRecord, error) {
	var record IBBIRecord
	url := fmt.Sprintf("%s/insolvency/%s", c.baseURL, pan)
	if err := fetchJSON(ctx, c.client, SourceIBBI, url, &record); err != nil {
		return nil, err
	}
	record.FetchedAt = time.Now().UTC()
	return &record, nil
}

// MockIBBIClient returns deterministic insolvency data derived from the PAN.
type MockIBBIClient struct {
	Latency time.Duration
	Fail    *FetchError
}

func (c MockIBBIClient) Fetch(ctx context.Context, pan string) (*IBBIRecord, error) {
	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, NewFetchError(FetchTimeout, SourceIBBI, "mock fetch cancelled", ctx.Err())
	}
	if c.Fail != nil {
		return nil, c.Fail
	}

	seed := mockSeed(pan)
	statuses := []string{"Clear", "Clear", "Clear", "Under Process"}
	return &IBBIRecord{
		PAN:              pan,
		InsolvencyStatus: statuses[seed%len(statuses)],
		NCLTCases:        seed % 3,
		IBBIRegistered:   false,
		FetchedAt:        time.Now().UTC(),
	}, nil
}
