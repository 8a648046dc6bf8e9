// Package fetcher retrieves the product page.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/caching"
	"github.com/go-resty/resty/v2"
)

type Options struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration

	// Cache may be nil. ForceFetch skips cache reads but still writes.
	Cache      *caching.Cache
	ForceFetch bool
	Logger     *slog.Logger
}

type Fetcher struct {
	client         *resty.Client
	acceptLanguage string
	cache          *caching.Cache
	forceFetch     bool
	logger         *slog.Logger
}

func NewFetcher(opts Options) *Fetcher {
	client := resty.New()
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.AcceptLanguage != "" {
		client.SetHeader("Accept-Language", opts.AcceptLanguage)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		client:         client,
		acceptLanguage: opts.AcceptLanguage,
		cache:          opts.Cache,
		forceFetch:     opts.ForceFetch,
		logger:         logger,
	}
}

// GetHtml fetches rawURL and parses the body.
func (f *Fetcher) GetHtml(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.GetHtmlBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// GetHtmlBytes issues one GET for rawURL. Transport errors and non-2xx
// responses are returned as NetworkFailure.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, rawURL string) ([]byte, error) {
	key := caching.Key(rawURL, f.acceptLanguage)
	if !f.forceFetch {
		if data, ok := f.cache.Get(key); ok {
			f.logger.Info("page cache hit", "url", rawURL, "bytes", len(data))
			return data, nil
		}
	}

	start := time.Now()
	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, models.NewAnalysisError(models.KindNetworkFailure,
			"failed to make HTTP request to "+rawURL, err)
	}
	if !resp.IsSuccess() {
		return nil, models.NewAnalysisError(models.KindNetworkFailure,
			fmt.Sprintf("failed to fetch %s, status code: %d", rawURL, resp.StatusCode()), nil)
	}

	body := resp.Body()
	f.logger.Info("fetched page", "url", rawURL, "status", resp.StatusCode(),
		"bytes", len(body), "duration_ms", time.Since(start).Milliseconds())

	if err := f.cache.Set(key, body); err != nil {
		f.logger.Warn("failed to cache page", "url", rawURL, "error", err)
	}
	return body, nil
}

// NormalizeURL trims a pasted URL and checks it is absolute http(s).
func NormalizeURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'<>`)
	if cleaned == "" {
		return "", models.NewAnalysisError(models.KindInvalidInput, "no URL given", nil)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", models.NewAnalysisError(models.KindInvalidInput, "malformed URL "+cleaned, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", models.NewAnalysisError(models.KindInvalidInput,
			fmt.Sprintf("URL %s must use http or https", cleaned), nil)
	}
	if parsed.Host == "" {
		return "", models.NewAnalysisError(models.KindInvalidInput, "URL has no host: "+cleaned, nil)
	}
	return parsed.String(), nil
}
