// Package postgrest is a small client for a PostgREST endpoint such as the
// Supabase REST API. Every table is addressed as <base>/rest/v1/<table> and
// rows are filtered with eq.<value> query parameters.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const (
	restPath       = "/rest/v1/"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Filter narrows a request to matching rows
type Filter struct {
	Column string
	Value  string
}

// Eq matches rows whose column equals value
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: fmt.Sprintf("eq.%v", value)}
}

// Client performs row operations against one PostgREST endpoint. Responses
// are decoded into out, which must be a pointer to a slice since PostgREST
// always answers with arrays.
type Client interface {
	Select(ctx context.Context, table string, out interface{}, filters ...Filter) error
	Insert(ctx context.Context, table string, row interface{}, out interface{}) error
	Update(ctx context.Context, table string, patch interface{}, out interface{}, filters ...Filter) error
	// Delete removes matching rows. When out is non-nil the deleted rows are
	// decoded into it.
	Delete(ctx context.Context, table string, out interface{}, filters ...Filter) error
}

// Config holds the dependencies for the client
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if strings.TrimSpace(c.BaseURL) == "" {
		vb.RequiredField("BaseURL")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if c.APIKey == "" {
		vb.RequiredField("APIKey")
	}

	return vb.Build()
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a PostgREST client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}, nil
}

func (c *client) Select(ctx context.Context, table string, out interface{}, filters ...Filter) error {
	return c.do(ctx, http.MethodGet, table, filters, nil, out)
}

func (c *client) Insert(ctx context.Context, table string, row interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, table, nil, row, out)
}

func (c *client) Update(ctx context.Context, table string, patch interface{}, out interface{}, filters ...Filter) error {
	if len(filters) == 0 {
		return errors.InvalidArgument("update requires at least one filter")
	}
	return c.do(ctx, http.MethodPatch, table, filters, patch, out)
}

func (c *client) Delete(ctx context.Context, table string, out interface{}, filters ...Filter) error {
	if len(filters) == 0 {
		return errors.InvalidArgument("delete requires at least one filter")
	}
	return c.do(ctx, http.MethodDelete, table, filters, nil, out)
}

func (c *client) do(ctx context.Context, method, table string, filters []Filter, body, out interface{}) error {
	if table == "" {
		return errors.InvalidArgument("table is required")
	}

	query := url.Values{}
	if method == http.MethodGet {
		query.Set("select", "*")
	}
	for _, f := range filters {
		query.Add(f.Column, f.Value)
	}
	endpoint := c.baseURL + restPath + url.PathEscape(table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s payload", table)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrapf(err, "failed to build %s request", method)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch || (method == http.MethodDelete && out != nil) {
		req.Header.Set("Prefer", "return=representation")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("postgrest request failed",
			zap.String("method", method),
			zap.String("table", table),
			zap.Error(err))
		return errors.Transportf(err, "%s %s failed", method, table)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("postgrest request",
		zap.String("method", method),
		zap.String("table", table),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.Newf(errors.CodeFromHTTPStatus(resp.StatusCode),
			"%s %s returned %s: %s", method, table, resp.Status, strings.TrimSpace(string(detail))).
			WithMeta("status", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Transportf(err, "failed to decode %s response", table)
	}
	return nil
}
