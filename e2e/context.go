package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestContext drives the HTTP API of a running server and records the last
// response for step assertions.
type TestContext struct {
	baseURL string
	client  *http.Client

	accessToken string
	vendorID    string

	lastStatus int
	lastBody   map[string]any
}

// NewTestContext creates a context targeting the server at baseURL.
func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.accessToken = ""
	tc.vendorID = ""
	tc.lastStatus = 0
	tc.lastBody = nil
}

// POST sends a JSON body to path.
func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, nil)
}

// PUT sends a JSON body to path.
func (tc *TestContext) PUT(path string, body any) error {
	return tc.do(http.MethodPut, path, body, nil)
}

// GET requests path with optional headers.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody = nil
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			tc.lastBody = decoded
		}
	}
	return nil
}

// LastStatus returns the status code of the most recent response.
func (tc *TestContext) LastStatus() int { return tc.lastStatus }

// GetResponseField reads a top-level field from the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	if tc.lastBody == nil {
		return nil, fmt.Errorf("no JSON body in last response (status %d)", tc.lastStatus)
	}
	value, ok := tc.lastBody[field]
	if !ok {
		return nil, fmt.Errorf("field %q not present in last response", field)
	}
	return value, nil
}

// SetAccessToken attaches a bearer token to subsequent requests.
func (tc *TestContext) SetAccessToken(token string) { tc.accessToken = token }

// GetAccessToken returns the saved bearer token.
func (tc *TestContext) GetAccessToken() string { return tc.accessToken }

// SetVendorID saves a vendor ID for later steps.
func (tc *TestContext) SetVendorID(vendorID string) { tc.vendorID = vendorID }

// GetVendorID returns the saved vendor ID.
func (tc *TestContext) GetVendorID() string { return tc.vendorID }
