// Package fetch downloads linked resources with redirect following,
// content classification, rate limiting and a short-lived response cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Kind classifies the final fetched resource.
type Kind string

const (
	KindImage   Kind = "image"
	KindPDF     Kind = "pdf"
	KindHTML    Kind = "html"
	KindUnknown Kind = "unknown"
)

// Result is a fetched resource after all redirects.
type Result struct {
	Kind        Kind
	FinalURL    string
	ContentType string
	Body        []byte
}

// Config holds the client tunables.
type Config struct {
	Timeout           time.Duration
	MaxBodyBytes      int64
	CacheSize         int
	CacheTTL          time.Duration
	RequestsPerSecond float64
	UserAgent         string
}

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 10 << 20
	defaultCacheSize    = 128
	defaultCacheTTL     = 10 * time.Minute
	defaultRPS          = 2
	defaultUserAgent    = "Mozilla/5.0 (compatible; newsletter-automation/1.0)"
)

// Client fetches and classifies linked content.
type Client struct {
	http      *http.Client
	cache     *lru.LRU[string, *Result]
	limiter   *rate.Limiter
	maxBody   int64
	userAgent string
}

// New builds a Client, filling zero config fields with defaults.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		cache:     lru.NewLRU[string, *Result](cfg.CacheSize, nil, cfg.CacheTTL),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxBody:   cfg.MaxBodyBytes,
		userAgent: cfg.UserAgent,
	}
}

// Get fetches a URL, following redirects, and returns the classified final
// content. Results are cached by the requested URL, so repeated links in
// one newsletter hit the network once.
func (c *Client) Get(ctx context.Context, url string) (*Result, error) {
	if cached, ok := c.cache.Get(url); ok {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	contentType := resp.Header.Get("Content-Type")

	res := &Result{
		Kind:        classify(finalURL, contentType),
		FinalURL:    finalURL,
		ContentType: contentType,
		Body:        body,
	}
	c.cache.Add(url, res)
	return res, nil
}

// classify decides the resource kind from the Content-Type header, falling
// back to the final URL's suffix when the header is missing or generic.
func classify(finalURL, contentType string) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.Contains(ct, "application/pdf"):
		return KindPDF
	case strings.Contains(ct, "text/html"), strings.Contains(ct, "application/xhtml"):
		return KindHTML
	}

	switch {
	case IsImageURL(finalURL):
		return KindImage
	case IsPDFURL(finalURL):
		return KindPDF
	case strings.HasPrefix(ct, "text/"):
		return KindHTML
	}
	return KindUnknown
}

var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// IsImageURL reports whether the URL path ends with a known image suffix,
// ignoring any query string.
func IsImageURL(url string) bool {
	path := strings.ToLower(trimQuery(url))
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// IsPDFURL reports whether the URL path ends with .pdf, ignoring any query
// string.
func IsPDFURL(url string) bool {
	return strings.HasSuffix(strings.ToLower(trimQuery(url)), ".pdf")
}

func trimQuery(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}
