package apptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client issues HTTP requests against an application instance running
// in-process. Its lifecycle is tied to the owning test: the
// underlying listener is closed when the test finishes.
type Client struct {
	base string
	http *http.Client
}

// NewClient starts an in-process HTTP server around the app's handler
// stack (so middleware, error handling and routing all run) and
// returns a client bound to it.
func NewClient(t *testing.T, h http.Handler) *Client {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &Client{
		base: ts.URL,
		http: ts.Client(),
	}
}

// Do sends a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil). It reports the response
// status code.
func (c *Client) Do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, reqBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}

	return resp.StatusCode
}

// Get issues a GET request.
func (c *Client) Get(t *testing.T, path string, out any) int {
	t.Helper()
	return c.Do(t, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(t *testing.T, path string, body, out any) int {
	t.Helper()
	return c.Do(t, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(t *testing.T, path string, body, out any) int {
	t.Helper()
	return c.Do(t, http.MethodPut, path, body, out)
}
