//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext holds state between test steps.
type TestContext struct {
	BaseURL          string
	AdminToken       string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte
	// Saved holds values captured from earlier responses, keyed by name.
	Saved map[string]string
	// RunID keeps resource ids unique across runs against a shared server.
	RunID string
}

func NewTestContext() *TestContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("E2E_ADMIN_TOKEN")
	if token == "" {
		token = "e2e-admin-token"
	}
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AdminToken: token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Saved:      map[string]string{},
		RunID:      fmt.Sprintf("%d", time.Now().UnixNano()),
	}
}

// Expand replaces {name} placeholders with saved values and {run} with the run id.
func (tc *TestContext) Expand(s string) string {
	s = strings.ReplaceAll(s, "{run}", tc.RunID)
	for k, v := range tc.Saved {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

// Do sends a request and stores the response. A non-nil body that is not
// []byte is JSON encoded.
func (tc *TestContext) Do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+tc.Expand(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// Admin sends a request carrying the admin token.
func (tc *TestContext) Admin(method, path string, body any) error {
	return tc.Do(method, path, body, map[string]string{
		"X-Admin-Token":    tc.AdminToken,
		"X-Admin-Actor-ID": "e2e",
	})
}

// GetResponseField extracts a top-level field from the JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}
	return value, nil
}

func (tc *TestContext) ResponseContains(text string) bool {
	return strings.Contains(string(tc.LastResponseBody), tc.Expand(text))
}
