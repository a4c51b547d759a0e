// Package catalog implements the HTTP client for the icon catalog API.
//
// Requests go through a same-origin proxy that attaches the upstream
// credential and per-route accept headers; the client itself never carries
// credentials. All failures map to the closed error taxonomy in errors.go.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPerPage is the catalog page size used when the caller does not ask
// for a specific one. The pagination label math in the picker assumes the
// same window size.
const DefaultPerPage = 100

const (
	acceptJSON = "application/json"
	acceptSVG  = "image/svg+xml"
)

// Client talks to the catalog through the proxy base URL. The zero value is
// not usable; construct with New.
type Client struct {
	base   *url.URL
	family string
	http   *http.Client
	logger *slog.Logger
}

// New builds a Client for one icon family. An absolute baseURL is used
// as-is; a path-only baseURL is resolved against origin.
//
// The underlying http.Client has no timeout: in-flight requests are never
// cancelled by the client, only by the caller's context.
func New(baseURL, origin, family string) (*Client, error) {
	if family == "" {
		return nil, fmt.Errorf("catalog: family slug is required")
	}
	base, err := resolveBase(baseURL, origin)
	if err != nil {
		return nil, err
	}
	return &Client{
		base:   base,
		family: family,
		http:   &http.Client{},
		logger: slog.Default(),
	}, nil
}

// resolveBase parses baseURL and, when it has no scheme, resolves it
// against origin.
func resolveBase(baseURL, origin string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid base URL %q: %w", baseURL, err)
	}
	if base.IsAbs() {
		return base, nil
	}
	if origin == "" {
		return nil, fmt.Errorf("catalog: base URL %q is relative and no origin is configured", baseURL)
	}
	o, err := url.Parse(origin)
	if err != nil || !o.IsAbs() {
		return nil, fmt.Errorf("catalog: invalid origin %q", origin)
	}
	return o.ResolveReference(base), nil
}

// Family returns the family slug the client searches in.
func (c *Client) Family() string { return c.family }

// Search queries the catalog for icons matching query. An empty query lists
// the family unfiltered. page starts at 1; perPage <= 0 falls back to
// DefaultPerPage.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	u := c.base.JoinPath("search", "family", c.family)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if strings.TrimSpace(query) != "" {
		params.Set("query", query)
	}
	u.RawQuery = params.Encode()

	body, err := c.get(ctx, u, acceptJSON)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp SearchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("catalog: decoding search response: %w", err)
	}
	c.logger.Debug("catalog search",
		"family", c.family, "query", query, "page", page,
		"results", len(resp.Results), "total", resp.Pagination.Total)
	return &resp, nil
}

// Download fetches the raw SVG markup for one icon by hash.
func (c *Client) Download(ctx context.Context, hash string) (string, error) {
	if hash == "" {
		return "", fmt.Errorf("catalog: icon hash is required")
	}

	u := c.base.JoinPath("icons", hash, "download", "svg")
	u.RawQuery = "size=48&responsive=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptSVG)

	res, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{URL: u.String(), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return "", &HTTPError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Message:    fmt.Sprintf("Failed to download SVG: %d", res.StatusCode),
		}
	}

	markup, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &NetworkError{URL: u.String(), Err: err}
	}
	c.logger.Debug("catalog download", "hash", hash, "bytes", len(markup))
	return string(markup), nil
}

// get issues a GET with the given accept header and maps non-2xx statuses
// and transport failures to the error taxonomy. The caller owns the body on
// success.
func (c *Client) get(ctx context.Context, u *url.URL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
		return nil, statusError(res)
	}
	return res.Body, nil
}

// statusError maps a non-2xx search response to the taxonomy.
func statusError(res *http.Response) error {
	switch res.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{}
	case http.StatusTooManyRequests:
		return &RateLimitError{}
	default:
		return &HTTPError{StatusCode: res.StatusCode, Status: res.Status}
	}
}
