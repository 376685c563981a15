package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// GSTNClient queries the tax-filing registry for a GSTIN. Mock implementations
// use deterministic data and a configurable latency to mimic real-world calls.
type GSTNClient interface {
	Fetch(ctx context.Context, gstin string) (*GSTNRecord, error)
}

// HTTPGSTNClient talks to the GSTN search API.
type HTTPGSTNClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGSTNClient(baseURL string, timeout time.Duration) *HTTPGSTNClient {
	return &HTTPGSTNClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (c *HTTPGSTNClient) Fetch(ctx context.Context, gstin string) (*GSTNRecord, error) {
	var record GSTNRecord
	url := fmt.Sprintf("%s/search/%s", c.baseURL, gstin)
	if err := fetchJSON(ctx, c.client, SourceGSTN, url, &record); err != nil {
		return nil, err
	}
	record.FetchedAt = time.Now().UTC()
	return &record, nil
}

// MockGSTNClient returns deterministic filing data derived from the GSTIN.
type MockGSTNClient struct {
	Latency time.Duration
	Fail    *FetchError // non-nil forces every Fetch to fail with this error
}

func (c MockGSTNClient) Fetch(ctx context.Context, gstin string) (*GSTNRecord, error) {
	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, NewFetchError(FetchTimeout, SourceGSTN, "mock fetch cancelled", ctx.Err())
	}
	if c.Fail != nil {
		return nil, c.Fail
	}

	seed := mockSeed(gstin)
	statuses := []string{"Active", "Active", "Suspended", "Cancelled"}
	filings := []string{"2024-10", "2024-09", "Not Filed"}
	registered := time.Now().AddDate(0, 0, -(10 + seed%1500))

	prefix := gstin
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	return &GSTNRecord{
		GSTIN:              gstin,
		LegalName:          "Company " + prefix,
		TradeName:          "Trading As " + prefix,
		RegistrationDate:   registered.Format("2006-01-02"),
		Status:             statuses[seed%len(statuses)],
		TaxpayerType:       "Regular",
		GSTR1LastFiled:     filings[seed%len(filings)],
		GSTR3BLastFiled:    filings[(seed/3)%len(filings)],
		CenterJurisdiction: "Mumbai Central",
		StateJurisdiction:  "Maharashtra",
		FetchedAt:          time.Now().UTC(),
	}, nil
}
