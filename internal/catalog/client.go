package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jloaiza/melisearch/internal/logger"
	"github.com/jloaiza/melisearch/internal/utils"
)

// searchPath is the templated search endpoint, relative to the base
// host. status=active and the site identifier are fixed per deployment.
const searchPath = "/products/search"

// TokenProvider supplies the API credential for each request.
// The credential is a fixed, manually-rotated token; acquisition and
// refresh live outside this package.
type TokenProvider interface {
	Token() string
}

// StaticToken is a TokenProvider around a fixed credential.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Options configures a catalog client.
type Options struct {
	BaseURL string        // ex: "https://api.mercadolibre.com"
	SiteID  string        // ex: "MLM"
	Timeout time.Duration // per-request timeout (0 = no client timeout)
	Tokens  TokenProvider
}

// Client issues catalog search requests. One network call per
// invocation, no retries, no caching. Queries are sent as given: the
// caller owns trimming and empty-input rejection.
type Client struct {
	http    *http.Client
	baseURL string
	siteID  string
	tokens  TokenProvider
	logger  logger.Logger
}

// NewClient builds a catalog client.
func NewClient(opts Options, log logger.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		siteID:  opts.SiteID,
		tokens:  opts.Tokens,
		logger:  log,
	}
}

// Search runs one GET against the search endpoint and returns the
// decoded result list, possibly empty. Failures are always a *Error
// carrying the kind (and status code for HTTP failures).
func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	endpoint, err := c.searchURL(query)
	if err != nil {
		return nil, invalidRequestErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, invalidRequestErr(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("catalog request",
		logger.String("url", endpoint),
		logger.String("query", query))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("catalog request failed",
			logger.String("query", query),
			logger.Int("status", resp.StatusCode))
		return nil, httpStatusErr(resp.StatusCode)
	}

	var decoded SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, decodeErr(err)
	}

	c.logger.Debug("catalog response",
		logger.String("query", query),
		logger.Int("results", len(decoded.Results)),
		logger.Duration("duration", time.Since(start)))

	return decoded.Results, nil
}

// searchURL embeds the query and site identifier into the endpoint.
func (c *Client) searchURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("status", "active")
	params.Set("site_id", c.siteID)
	params.Set("q", query)
	u.RawQuery = params.Encode()

	return u.String(), nil
}
