package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const (
	endpointContent = "content"
	endpointTeam    = "team"

	defaultContentPath = "/cases"
	defaultTeamPath    = "/team"
	defaultTimeout     = 10 * time.Second
	maxPages           = 100
)

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithPaths overrides the content and team endpoint paths.
func WithPaths(contentPath, teamPath string) ClientOption {
	return func(c *Client) {
		if strings.TrimSpace(contentPath) != "" {
			c.contentPath = contentPath
		}
		if strings.TrimSpace(teamPath) != "" {
			c.teamPath = teamPath
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for key, value := range headers {
			if strings.TrimSpace(key) != "" {
				c.headers[key] = value
			}
		}
	}
}

// WithPagination makes the client request successive pages until a short page.
func WithPagination(enabled bool) ClientOption {
	return func(c *Client) {
		c.paginate = enabled
	}
}

// WithSchemaValidation toggles envelope validation.
func WithSchemaValidation(enabled bool) ClientOption {
	return func(c *Client) {
		c.validate = enabled
	}
}

// WithClientLogger injects the logger used for request diagnostics.
func WithClientLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client reads content and team records from the REST backend.
type Client struct {
	baseURL     *url.URL
	contentPath string
	teamPath    string
	headers     map[string]string
	http        *http.Client
	paginate    bool
	validate    bool
	logger      interfaces.Logger
}

var _ interfaces.ContentAPI = (*Client)(nil)

// NewClient constructs a client for the backend rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, ErrBaseURLRequired
	}
	parsed, err := url.Parse(strings.TrimRight(trimmed, "/"))
	if err != nil {
		return nil, fmt.Errorf("contentapi: parse base url: %w", err)
	}
	c := &Client{
		baseURL:     parsed,
		contentPath: defaultContentPath,
		teamPath:    defaultTeamPath,
		headers:     map[string]string{"Accept": "application/json"},
		http:        &http.Client{Timeout: defaultTimeout},
		validate:    true,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromConfig builds a client from the content configuration.
func NewClientFromConfig(cfg runtimeconfig.ContentConfig, opts ...ClientOption) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := []ClientOption{
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithPaths(cfg.ContentPath, cfg.TeamPath),
		WithHeaders(cfg.Headers),
		WithPagination(cfg.Paginate),
		WithSchemaValidation(cfg.ValidateSchema),
	}
	return NewClient(cfg.BaseURL, append(base, opts...)...)
}

// FetchContent returns the cases, news and banners collections.
func (c *Client) FetchContent(ctx context.Context, req interfaces.PageRequest) (*interfaces.ContentEnvelope, error) {
	req = normalizePage(req)
	envelope := &interfaces.ContentEnvelope{Data: interfaces.ContentCollections{
		Cases:   []interfaces.Record{},
		News:    []interfaces.Record{},
		Banners: []interfaces.Record{},
	}}
	for page := 0; page < maxPages; page++ {
		payload, err := c.get(ctx, endpointContent, c.contentPath, req)
		if err != nil {
			return nil, err
		}
		data := dataObject(payload)
		cases := collection(data, "cases")
		news := collection(data, "news")
		banners := collection(data, "banners")
		envelope.Data.Cases = append(envelope.Data.Cases, cases...)
		envelope.Data.News = append(envelope.Data.News, news...)
		envelope.Data.Banners = append(envelope.Data.Banners, banners...)

		if !c.paginate || max(len(cases), len(news), len(banners)) < req.Limit {
			break
		}
		req.Page++
	}
	return envelope, nil
}

// FetchTeam returns the team collection.
func (c *Client) FetchTeam(ctx context.Context, req interfaces.PageRequest) (*interfaces.TeamEnvelope, error) {
	req = normalizePage(req)
	envelope := &interfaces.TeamEnvelope{Data: interfaces.TeamCollections{Team: []interfaces.Record{}}}
	for page := 0; page < maxPages; page++ {
		payload, err := c.get(ctx, endpointTeam, c.teamPath, req)
		if err != nil {
			return nil, err
		}
		team := collection(dataObject(payload), "team")
		envelope.Data.Team = append(envelope.Data.Team, team...)
		if !c.paginate || len(team) < req.Limit {
			break
		}
		req.Page++
	}
	return envelope, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, req interfaces.PageRequest) (any, error) {
	target := c.endpointURL(path, req)
	logger := logging.WithFields(c.logger, map[string]any{
		"endpoint": endpoint,
		"page":     req.Page,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, wrapExternal(err, "content api request could not be built", textCodeRequestFailed)
	}
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Warn("contentapi.request.failed", "error", err)
		return nil, wrapExternal(err, "content api request failed", textCodeRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		logger.Warn("contentapi.request.status", "status", resp.StatusCode)
		return nil, wrapExternal(
			fmt.Errorf("%w: %s %d", ErrUnexpectedStatus, endpoint, resp.StatusCode),
			"content api returned an unexpected status",
			textCodeStatus,
		)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, wrapExternal(err, "content api payload could not be decoded", textCodeDecode)
	}
	if c.validate {
		if err := validateEnvelope(endpoint, payload); err != nil {
			logger.Warn("contentapi.schema.invalid", "error", err)
			return nil, wrapExternal(err, "content api payload failed validation", textCodeSchema)
		}
	}
	logger.Debug("contentapi.request.completed", "duration", time.Since(started))
	return payload, nil
}

func (c *Client) endpointURL(path string, req interfaces.PageRequest) string {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + "/" + strings.TrimLeft(path, "/")
	query := target.Query()
	query.Set("page", strconv.Itoa(req.Page))
	query.Set("limit", strconv.Itoa(req.Limit))
	target.RawQuery = query.Encode()
	return target.String()
}

func normalizePage(req interfaces.PageRequest) interfaces.PageRequest {
	defaults := interfaces.DefaultPageRequest()
	if req.Page <= 0 {
		req.Page = defaults.Page
	}
	if req.Limit <= 0 {
		req.Limit = defaults.Limit
	}
	return req
}

func dataObject(payload any) map[string]any {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	data, _ := root["data"].(map[string]any)
	return data
}

// collection extracts an array of objects, dropping entries of any other shape.
func collection(data map[string]any, name string) []interfaces.Record {
	raw, ok := data[name].([]any)
	if !ok {
		return []interfaces.Record{}
	}
	out := make([]interfaces.Record, 0, len(raw))
	for _, entry := range raw {
		if record, ok := entry.(map[string]any); ok {
			out = append(out, record)
		}
	}
	return out
}
