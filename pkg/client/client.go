package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/civiclens/conduit-mock/pkg/logging"
)

// DefaultTimeout bounds each request unless WithHTTPClient supplies a client.
const DefaultTimeout = 30 * time.Second

// Client talks to a Conduit API rooted at a base URL such as
// "http://localhost:3001/api".
type Client struct {
	baseURL    string
	rootURL    string
	httpClient *http.Client
	log        *slog.Logger

	mu    sync.RWMutex
	token string

	Users    *UsersService
	Articles *ArticlesService
	Comments *CommentsService
	Tags     *TagsService
	Admin    *AdminService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithToken sets the initial authentication token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets a logger that receives one debug line per request.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Users = &UsersService{c: c}
	c.Articles = &ArticlesService{c: c}
	c.Comments = &CommentsService{c: c}
	c.Tags = &TagsService{c: c}
	c.Admin = &AdminService{c: c}
	c.rootURL = c.baseURL
	if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
		c.rootURL = u.Scheme + "://" + u.Host
	}
	return c
}

// SetToken sets the token sent with subsequent requests. An empty token
// makes the client anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current authentication token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Errors map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("conduit: status %d", e.Status)
	}
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(e.Errors[k], ", "))
	}
	return fmt.Sprintf("conduit: status %d: %s", e.Status, strings.Join(parts, "; "))
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// do sends a request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path, query string, body, out any) error {
	return c.send(ctx, method, c.baseURL, path, query, body, out)
}

func (c *Client) send(ctx context.Context, method, base, path, query string, body, out any) error {
	target := base + path
	if query != "" {
		target += "?" + query
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Token "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.log.Debug("conduit request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Errors map[string][]string `json:"errors"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// escape encodes a path segment or query value the way browsers'
// encodeURIComponent does, so spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
