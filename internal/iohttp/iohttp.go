// Package iohttp provides the HTTP transport shared by all taxonomic
// sources. Every source gets its own minimum-interval rate limiter, so
// calls to one service never slow down calls to another.
package iohttp

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gnames/gntaxa/pkg/config"
	"github.com/gnames/gntaxa/pkg/taxon"
	"golang.org/x/time/rate"
)

// Transport keeps the HTTP client and per-source limiters.
type Transport struct {
	http     *http.Client
	headers  map[string]string
	debug    bool
	mu       sync.Mutex
	limiters map[taxon.Source]*rate.Limiter
	cfg      *config.Config
}

// NewTransport creates a Transport from configuration.
func NewTransport(cfg *config.Config) *Transport {
	headers := make(map[string]string, len(cfg.HTTP.Headers)+1)
	headers["User-Agent"] = cfg.HTTP.UserAgent
	for k, v := range cfg.HTTP.Headers {
		headers[k] = v
	}
	return &Transport{
		http:     &http.Client{Timeout: time.Duration(cfg.HTTP.TimeoutSec) * time.Second},
		headers:  headers,
		debug:    cfg.HTTP.Debug,
		limiters: make(map[taxon.Source]*rate.Limiter),
		cfg:      cfg,
	}
}

// Client returns a client bound to the given source. Clients of the same
// source share one limiter.
func (t *Transport) Client(src taxon.Source) *Client {
	t.mu.Lock()
	defer t.mu.Unlock()
	lim, ok := t.limiters[src]
	if !ok {
		lim = newLimiter(MinInterval(t.cfg, src))
		t.limiters[src] = lim
	}
	sc := t.cfg.Source(src)
	return &Client{
		src:     src,
		base:    sc.URL,
		apiKey:  sc.APIKey,
		t:       t,
		limiter: lim,
	}
}

// MinInterval returns the minimal interval between two calls to a
// source. An API key does not change it, faster rates have to be set
// explicitly with min_interval_ms.
func MinInterval(cfg *config.Config, src taxon.Source) time.Duration {
	sc := cfg.Source(src)
	return time.Duration(sc.MinIntervalMs) * time.Millisecond
}

func newLimiter(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// Client performs GET requests against one source.
type Client struct {
	src     taxon.Source
	base    string
	apiKey  string
	t       *Transport
	limiter *rate.Limiter
}

// Source returns the source the client talks to.
func (c *Client) Source() taxon.Source {
	return c.src
}

// APIKey returns the configured API key for the source, if any.
func (c *Client) APIKey() string {
	return c.apiKey
}

// URL builds a request URL from the source base URL, a path and query
// parameters. Path segments are escaped.
func (c *Client) URL(q url.Values, segments ...string) string {
	esc := make([]string, len(segments))
	for i := range segments {
		esc[i] = url.PathEscape(segments[i])
	}
	res := c.base + strings.Join(esc, "/")
	if len(q) > 0 {
		res += "?" + q.Encode()
	}
	return res
}

// GetJSON fetches url and decodes its JSON body into v. It returns false
// when the source has no records for the request (HTTP 204 or 404, or an
// empty body).
func (c *Client) GetJSON(ctx context.Context, url string, v any) (bool, error) {
	return c.get(ctx, url, v, func(r io.Reader, v any) error {
		return json.NewDecoder(r).Decode(v)
	})
}

// GetXML fetches url and decodes its XML body into v.
func (c *Client) GetXML(ctx context.Context, url string, v any) (bool, error) {
	return c.get(ctx, url, v, func(r io.Reader, v any) error {
		return xml.NewDecoder(r).Decode(v)
	})
}

func (c *Client) get(
	ctx context.Context,
	url string,
	v any,
	decode func(io.Reader, any) error,
) (bool, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return false, err
	}
	if body == nil {
		return false, nil
	}
	defer body.Close()

	err = decode(body, v)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, UnexpectedResponseError(c.src, redact(url), err)
	}
	return true, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, RateLimitError(c.src, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, RequestError(c.src, redact(url), err)
	}
	for k, v := range c.t.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.t.http.Do(req)
	if err != nil {
		return nil, RequestError(c.src, redact(url), err)
	}
	c.log(url, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent,
		resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, StatusError(c.src, redact(url), resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) log(url string, status int, dur time.Duration) {
	lvl := slog.LevelDebug
	if c.t.debug {
		lvl = slog.LevelInfo
	}
	slog.Log(context.Background(), lvl, "HTTP request",
		"source", c.src.String(),
		"url", redact(url),
		"status", status,
		"duration", dur.String(),
	)
}

// redact hides API keys from URLs that go to logs and error messages.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	var changed bool
	for _, k := range []string{"api_key", "key"} {
		if q.Has(k) {
			q.Set(k, "xxx")
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}
