package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/util"
)

// maxBodySize caps how much of a proxy response is read
const maxBodySize = 8 << 20

// ErrNotFound is returned when the proxy has no such page
var ErrNotFound = errors.New("page not found")

// Page is one entry of the project page listing
type Page struct {
	Title        string   `json:"title"`
	Descriptions []string `json:"descriptions"`
	Image        string   `json:"image"`
}

// Fetcher retrieves listings and page text from the wiki
type Fetcher interface {
	Pages(ctx context.Context, limit int) ([]Page, error)
	Text(ctx context.Context, title string) (string, error)
}

// Client talks to the wiki API through the proxy
type Client struct {
	baseURL    string
	project    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the project behind the proxy at baseURL
func NewClient(baseURL, project string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		project:    project,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pages fetches up to limit pages of the project listing
func (c *Client) Pages(ctx context.Context, limit int) ([]Page, error) {
	endpoint := c.baseURL + "/api/pages/" + c.project + "?limit=" + strconv.Itoa(limit)

	body, err := c.get(ctx, endpoint, "pages")
	if err != nil {
		return nil, err
	}

	var listing struct {
		Pages []Page `json:"pages"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		err = fmt.Errorf("failed to decode page listing: %w", err)
		c.log.FetchError("pages", err)
		return nil, err
	}

	return listing.Pages, nil
}

// Text fetches the raw text of a page. The first line is the title.
func (c *Client) Text(ctx context.Context, title string) (string, error) {
	endpoint := c.baseURL + "/api/pages/" + c.project + "/" + util.EncodeURIComponent(title) + "/text"

	body, err := c.get(ctx, endpoint, title)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, endpoint, resource string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to fetch %s: %w", resource, err)
		c.log.FetchError(resource, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		err := fmt.Errorf("%s: %w", resource, ErrNotFound)
		c.log.FetchError(resource, err)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("failed to fetch %s: unexpected status %s", resource, resp.Status)
		c.log.FetchError(resource, err)
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		err = fmt.Errorf("failed to read %s: %w", resource, err)
		c.log.FetchError(resource, err)
		return nil, err
	}

	c.log.PageFetched(resource, len(body), time.Since(start))
	return body, nil
}
