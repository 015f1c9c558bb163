package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// StatusEmpty is the status the server uses to confirm a search matched
// nothing. It is distinct from a successful empty array.
const StatusEmpty = http.StatusResetContent

const defaultTimeout = 10 * time.Second

// Query carries the parameters of one remote search.
type Query struct {
	Term        string
	Filter      string
	IgnoreCache bool
}

// Result is the outcome of a successful search. Empty is set only when the
// server sent the explicit no-match signal.
type Result struct {
	Empty bool
	Items []json.RawMessage
}

// ResponseError describes a non-2xx response. Notification holds the
// user-facing message supplied by the server, if any.
type ResponseError struct {
	Status       int
	Notification string
	Message      string
}

func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Notification
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, msg)
}

// Notification returns the message to show a user for err.
func Notification(err error) string {
	if err == nil {
		return ""
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		if respErr.Notification != "" {
			return respErr.Notification
		}
		if respErr.Message != "" {
			return respErr.Message
		}
		return http.StatusText(respErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}

// ClientOptions tunes a Client.
type ClientOptions struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the list service.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
}

// NewClient constructs a client for the service at baseURL.
func NewClient(baseURL, token string, opts ClientOptions) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = logging.NewHTTPClient(timeout)
	}
	return &Client{base: base, token: token, http: httpClient}, nil
}

// Search issues GET route?search=...&filter=...&ignoreCache=true.
func (c *Client) Search(ctx context.Context, route string, q Query) (Result, error) {
	params := url.Values{}
	params.Set("search", q.Term)
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.IgnoreCache {
		params.Set("ignoreCache", "true")
	}
	status, body, err := c.do(ctx, http.MethodGet, route, params, nil)
	if err != nil {
		return Result{}, err
	}
	if status == StatusEmpty {
		return Result{Empty: true}, nil
	}
	items, err := parseArray(body)
	if err != nil {
		return Result{}, err
	}
	return Result{Items: items}, nil
}

// List fetches the full contents of a section's list route.
func (c *Client) List(ctx context.Context, route string) ([]json.RawMessage, error) {
	status, body, err := c.do(ctx, http.MethodGet, route, nil, nil)
	if err != nil {
		return nil, err
	}
	if status == StatusEmpty {
		return []json.RawMessage{}, nil
	}
	return parseArray(body)
}

// Post sends payload as JSON to route and returns the raw response body.
func (c *Client) Post(ctx context.Context, route string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = strings.NewReader(string(data))
	}
	_, resp, err := c.do(ctx, http.MethodPost, route, nil, body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp), nil
}

func (c *Client) resolve(route string, params url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(route))
	if err != nil {
		return "", fmt.Errorf("parse route %q: %w", route, err)
	}
	target := *c.base
	target.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	query := ref.Query()
	for key, values := range params {
		query[key] = values
	}
	target.RawQuery = query.Encode()
	return target.String(), nil
}

func (c *Client) do(ctx context.Context, method, route string, params url.Values, body io.Reader) (int, []byte, error) {
	target, err := c.resolve(route, params)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, responseError(resp.StatusCode, data)
	}
	return resp.StatusCode, data, nil
}

// responseError decodes the {status, notification, message} error body.
// Bodies that are not JSON become the message verbatim.
func responseError(status int, body []byte) *ResponseError {
	respErr := &ResponseError{Status: status}
	if !gjson.ValidBytes(body) {
		respErr.Message = strings.TrimSpace(string(body))
		return respErr
	}
	parsed := gjson.ParseBytes(body)
	respErr.Notification = firstString(parsed, "notification", "notificationMessage", "error.notification")
	respErr.Message = firstString(parsed, "message", "error.message", "error")
	return respErr
}

func firstString(parsed gjson.Result, paths ...string) string {
	for _, path := range paths {
		if res := parsed.Get(path); res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
			return strings.TrimSpace(res.Str)
		}
	}
	return ""
}

func parseArray(body []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return []json.RawMessage{}, nil
	}
	if !gjson.Valid(trimmed) {
		return nil, errors.New("response is not valid JSON")
	}
	parsed := gjson.Parse(trimmed)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a JSON array, got %s", parsed.Type)
	}
	elems := parsed.Array()
	items := make([]json.RawMessage, 0, len(elems))
	for _, elem := range elems {
		items = append(items, json.RawMessage(elem.Raw))
	}
	return items, nil
}
