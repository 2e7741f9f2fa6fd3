package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

// Result is a created change record.
type Result struct {
	ChangeID string
}

// RedirectPath returns the detail page of the created record.
func (r Result) RedirectPath() string {
	return RedirectPath(r.ChangeID)
}

// RedirectPath builds /changes/{id}.
func RedirectPath(id string) string {
	return "/changes/" + id
}

// Creator sends a payload and returns the created record.
type Creator interface {
	Create(ctx context.Context, payload Payload) (Result, error)
}

// Client posts change records to {base}/changes.
type Client struct {
	endpoint      string
	http          *http.Client
	sessionCookie string
	sessionValue  string
	logger        *zap.Logger
}

var _ Creator = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout sets the request timeout on the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			clone := *c.http
			clone.Timeout = timeout
			c.http = &clone
		}
	}
}

// WithSessionCookie attaches a session cookie to every request.
func WithSessionCookie(name, value string) Option {
	return func(c *Client) {
		c.sessionCookie = name
		c.sessionValue = value
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a Client for the backend at baseURL.
func NewClient(baseURL string, options ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("submit: invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("submit: base url %q must use http or https", baseURL)
	}
	c := &Client{
		endpoint: strings.TrimRight(base.String(), "/") + "/changes",
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Create issues one POST. Non-2xx responses return *RejectedError and
// transport failures *NetworkError. There are no retries.
func (c *Client) Create(ctx context.Context, payload Payload) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload.Body))
	if err != nil {
		return Result{}, fmt.Errorf("submit: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.sessionCookie != "" && c.sessionValue != "" {
		req.AddCookie(&http.Cookie{Name: c.sessionCookie, Value: c.sessionValue})
	}

	logger := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", c.endpoint))
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("change submission failed", zap.Error(err))
		return Result{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rejected := &RejectedError{Status: resp.StatusCode, Detail: decodeDetail(body)}
		logger.Info("change submission rejected", zap.Int("status", resp.StatusCode), zap.String("detail", rejected.Detail))
		return Result{}, rejected
	}

	id, err := decodeChangeID(body)
	if err != nil {
		return Result{}, fmt.Errorf("submit: decode response: %w", err)
	}
	logger.Info("change record created", zap.String("change_id", id))
	return Result{ChangeID: id}, nil
}

func decodeDetail(body []byte) string {
	var problem struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &problem); err != nil {
		return ""
	}
	detail, _ := problem.Detail.(string)
	return detail
}

var errMissingChangeID = errors.New("response has no change_id")

func decodeChangeID(body []byte) (string, error) {
	var created struct {
		ChangeID json.RawMessage `json:"change_id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", err
	}
	raw := bytes.TrimSpace(created.ChangeID)
	if len(raw) == 0 || string(raw) == "null" {
		return "", errMissingChangeID
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errMissingChangeID
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("change_id must be a number or string: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("change_id out of range: %w", err)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
