package movie

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

	"golang.org/x/time/rate"
)

var (
	ErrMissingAPIKey  = errors.New("no OMDb API key configured")
	ErrInvalidAPIKey  = errors.New("invalid OMDb API key")
	ErrNotFound       = errors.New("movie not found")
	ErrTooManyResults = errors.New("too many results, refine the search")
	ErrUpstream       = errors.New("movie source error")
)

const maxResponseBytes = 1 << 20

type Options struct {
	BaseURL       string
	APIKey        string
	RatePerSecond float64
	Timeout       time.Duration
}

// Client talks to the OMDb API. Requests are paced by a limiter shared between every
// copy made with WithAPIKey.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(opts Options) *Client {
	burst := int(opts.RatePerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst),
	}
}

// WithAPIKey returns a client that authenticates with key. An empty key keeps the
// current one.
func (c *Client) WithAPIKey(key string) *Client {
	if key == "" {
		return c
	}
	clone := *c
	clone.apiKey = key
	return &clone
}

func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

type searchResponse struct {
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
}

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Movie{}, nil
	}

	var resp searchResponse
	if err := c.get(ctx, url.Values{"s": {query}, "type": {"movie"}}, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Movie{}, nil
		}
		return nil, err
	}
	return resp.Search, nil
}

func (c *Client) ByTitle(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNotFound
	}

	var m Movie
	if err := c.get(ctx, url.Values{"t": {title}}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ByID(ctx context.Context, imdbID string) (*Movie, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, ErrNotFound
	}

	var m Movie
	if err := c.get(ctx, url.Values{"i": {imdbID}}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid OMDb base URL: %w", err)
	}
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrUpstream, err)
	}

	// OMDb reports most failures in the body, sometimes with a 200 status
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}
		return fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, err)
	}
	if strings.EqualFold(env.Response, "False") {
		return classify(env.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, err)
	}
	return nil
}

func classify(msg string) error {
	switch {
	case strings.Contains(msg, "Invalid API key"), strings.Contains(msg, "No API key"):
		return ErrInvalidAPIKey
	case strings.Contains(msg, "not found"), strings.Contains(msg, "Incorrect IMDb ID"):
		return ErrNotFound
	case strings.Contains(msg, "Too many results"):
		return ErrTooManyResults
	}
	return fmt.Errorf("%w: %s", ErrUpstream, msg)
}
