package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// NewHTTPClient returns a client that traces requests and responses when
// tracing is enabled.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &RoundTripTracer{Transport: http.DefaultTransport},
	}
}

// RoundTripTracer is an http.RoundTripper that records requests and responses
// as trace events.
type RoundTripTracer struct {
	Transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *RoundTripTracer) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if !TraceEnabled() {
		return transport.RoundTrip(req)
	}

	Trace("http.request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
	})

	start := time.Now()
	resp, err := transport.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		Trace("http.error", map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL.String(),
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return resp, err
	}

	var body string
	body, resp.Body, err = drainBody(resp.Body)
	Trace("http.response", map[string]interface{}{
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
		"body":        body,
	})
	return resp, err
}

func drainBody(b io.ReadCloser) (string, io.ReadCloser, error) {
	if b == nil || b == http.NoBody {
		return "", http.NoBody, nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", b, err
	}
	if err := b.Close(); err != nil {
		return "", b, err
	}
	raw := buf.Bytes()
	var compact bytes.Buffer
	text := string(raw)
	if json.Compact(&compact, bytes.TrimSpace(raw)) == nil {
		text = compact.String()
	}
	return text, io.NopCloser(bytes.NewReader(raw)), nil
}

func redactHeaders(headers http.Header) map[string][]string {
	filtered := make(map[string][]string, len(headers))
	for key, values := range headers {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "authorization") || strings.Contains(lower, "token") || strings.Contains(lower, "secret") {
			filtered[key] = []string{"[REDACTED]"}
			continue
		}
		filtered[key] = values
	}
	return filtered
}
