package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tableflip.dev/moodlog/pkg/emotion"
	"tableflip.dev/moodlog/pkg/observability"
)

const (
	// DefaultTimeout bounds every request when Options.Timeout is unset.
	DefaultTimeout = 10 * time.Second

	retryBackoff = 200 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Rate limits outbound requests per second; zero disables limiting.
	Rate float64
	// Retries is the number of extra attempts for idempotent reads that fail
	// with a temporary error.
	Retries int
	// Connected gates every request; nil means always connected.
	Connected  func() bool
	HTTPClient *http.Client
	Metrics    *observability.Metrics
	Log        *zap.SugaredLogger
}

// Client talks to the remote emotion service over JSON/HTTP.
type Client struct {
	base      *url.URL
	token     string
	timeout   time.Duration
	retries   int
	connected func() bool
	http      *http.Client
	limiter   *rate.Limiter
	metrics   *observability.Metrics
	log       *zap.SugaredLogger
}

var _ Gateway = (*Client)(nil)

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("gateway: base url required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("gateway: unsupported scheme %q", base.Scheme)
	}
	c := &Client{
		base:      base,
		token:     opts.Token,
		timeout:   opts.Timeout,
		retries:   opts.Retries,
		connected: opts.Connected,
		http:      opts.HTTPClient,
		metrics:   opts.Metrics,
		log:       opts.Log,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retries < 0 {
		c.retries = 0
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if opts.Rate > 0 {
		burst := int(opts.Rate)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	return c, nil
}

func (c *Client) FetchCatalog(ctx context.Context, onlyMandatory bool) ([]emotion.Definition, error) {
	mode := emotion.ModeMandatory
	if !onlyMandatory {
		mode = emotion.ModeOptional
	}
	var out []emotion.Definition
	err := c.do(ctx, OpFetchCatalog, http.MethodGet, "/emotions", url.Values{"mode": {string(mode)}}, nil, &out)
	return out, err
}

func (c *Client) FetchSelectedOptional(ctx context.Context) ([]emotion.Selection, error) {
	var out []emotion.Selection
	err := c.do(ctx, OpFetchSelected, http.MethodGet, "/emotions/selected", nil, nil, &out)
	return out, err
}

func (c *Client) AddOptionalSelection(ctx context.Context, emotionID string) (emotion.Selection, error) {
	var out emotion.Selection
	body := map[string]string{"emotionId": emotionID}
	err := c.do(ctx, OpAddSelection, http.MethodPost, "/emotions/selected", nil, body, &out)
	return out, err
}

func (c *Client) RemoveOptionalSelection(ctx context.Context, deletionID string) error {
	path := "/emotions/selected/" + url.PathEscape(deletionID)
	return c.do(ctx, OpRemoveSelection, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) FetchCalendarHistory(ctx context.Context, since *emotion.Date) ([]emotion.RawEntry, error) {
	var query url.Values
	if since != nil && !since.IsZero() {
		query = url.Values{"since": {since.String()}}
	}
	var out []emotion.RawEntry
	err := c.do(ctx, OpFetchHistory, http.MethodGet, "/records", query, nil, &out)
	return out, err
}

func (c *Client) FetchMonthly(ctx context.Context) ([]emotion.MonthlyPoint, error) {
	var out []emotion.MonthlyPoint
	err := c.do(ctx, OpFetchMonthly, http.MethodGet, "/records/monthly", nil, nil, &out)
	return out, err
}

func (c *Client) ChangeEmotionState(ctx context.Context, req emotion.ChangeRequest, isUpdate bool) (emotion.RawEntry, error) {
	var out emotion.RawEntry
	if isUpdate {
		if req.RecordID == "" {
			return out, errors.New("gateway: update requires a record id")
		}
		err := c.do(ctx, OpChangeState, http.MethodPatch, "/records/"+url.PathEscape(req.RecordID), nil, req, &out)
		return out, err
	}
	err := c.do(ctx, OpChangeState, http.MethodPost, "/records", nil, req, &out)
	return out, err
}

func (c *Client) FetchCategories(ctx context.Context) ([]emotion.Category, error) {
	var out []emotion.Category
	err := c.do(ctx, OpFetchCategories, http.MethodGet, "/categories", nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveGateway(op, start, err)
		if err != nil {
			c.log.Warnw("gateway request failed", "op", op, "method", method, "path", path, "error", err)
		}
	}()

	if c.connected != nil && !c.connected() {
		return ErrOffline
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s body: %w", op, err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retries
	}
	for attempt := 1; ; attempt++ {
		err = c.once(ctx, method, path, query, payload, out)
		if err == nil || attempt >= attempts || !temporary(err) {
			return err
		}
		c.log.Debugw("retrying gateway request", "op", op, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
}

func (c *Client) once(ctx context.Context, method, path string, query url.Values, payload []byte, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("gateway: rate limit: %w", err)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// An empty body leaves out untouched.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return nil
}

func temporary(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Temporary()
	}
	return true
}
