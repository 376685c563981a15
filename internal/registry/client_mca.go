package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// MCAClient queries the corporate registry for director and company linkage
// data keyed by PAN.
type MCAClient interface {
	Fetch(ctx context.Context, pan string) (*MCARecord, error)
}

// HTTPMCAClient talks to the MCA company API.
type HTTPMCAClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPMCAClient(baseURL string, timeout time.Duration) *HTTPMCAClient {
	return &HTTPMCAClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (c *HTTPMCAClient) Fetch(ctx context.Context, pan string) (*MCARecord, error) {
	var record MCARecord
	url := fmt.Sprintf("%s/company/%s", c.baseURL, pan)
	if err := fetchJSON(ctx, c.client, SourceMCA, url, &record); err != nil {
		return nil, err
	}
	record.FetchedAt = time.Now().UTC()
	return &record, nil
}

// MockMCAClient returns deterministic company-linkage data derived from the PAN.
type MockMCAClient struct {
	Latency time.Duration
	Fail    *FetchError
}

func (c MockMCAClient) Fetch(ctx context.Context, pan string) (*MCARecord, error) {
	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, NewFetchError(FetchTimeout, SourceMCA, "mock fetch cancelled", ctx.Err())
	}
	if c.Fail != nil {
		return nil, c.Fail
	}

	seed := mockSeed(pan)
	total := 1 + seed%50
	compliance := []string{"Compliant", "Minor Defaults", "Major Defaults"}
	return &MCARecord{
		PAN:                  pan,
		DirectorName:         fmt.Sprintf("Director %d", 1+seed%100),
		TotalCompanies:       total,
		ActiveCompanies:      1 + seed%total,
		DissolvedCompanies:   seed % (total/3 + 1),
		RecentIncorporations: seed % 6,
		FlaggedEntities:      seed % 4,
		ComplianceStatus:     compliance[seed%len(compliance)],
		FetchedAt:            time.Now().UTC(),
	}, nil
}
