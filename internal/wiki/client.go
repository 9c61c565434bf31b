// Package wiki retrieves area pages from the FFXIV Console Games Wiki,
// cache-first with a polite fetch rate.
package wiki

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eorzea-tools/aetheryte-cli/internal/store"
)

// browserUA mimics a desktop browser; the wiki serves bot UAs a reduced
// page without the definition lists.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// Options configures a Client.
type Options struct {
	BaseURL    string        // e.g. https://ffxiv.consolegameswiki.com
	Timeout    time.Duration // per-request timeout
	CacheTTL   time.Duration // page freshness window
	FetchDelay time.Duration // minimum spacing between live fetches
}

// Page is one retrieved area page.
type Page struct {
	Body      string
	FromCache bool
}

// Client fetches wiki pages. Live fetches are rate limited and refresh
// the cache; a network or HTTP failure yields a nil Page rather than an
// error, so one unreachable area never aborts a run.
type Client struct {
	client  *http.Client
	cache   store.PageCache
	limiter *rate.Limiter
	opts    Options
}

// NewClient creates a Client over the given page cache.
func NewClient(cache store.PageCache, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.FetchDelay == 0 {
		opts.FetchDelay = time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		cache:   cache,
		limiter: rate.NewLimiter(rate.Every(opts.FetchDelay), 1),
		opts:    opts,
	}
}

// Page returns the area page for a normalized area key. Returns (nil,
// nil) when the page could not be retrieved; only context cancellation
// surfaces as an error.
func (c *Client) Page(ctx context.Context, areaKey string) (*Page, error) {
	log := zap.L().With(zap.String("component", "wiki"), zap.String("area_key", areaKey))

	if c.cache != nil {
		body, err := c.cache.GetPage(ctx, areaKey)
		if err != nil {
			log.Warn("cache read failed, falling back to live fetch", zap.Error(err))
		} else if body != nil {
			log.Debug("cache hit")
			return &Page{Body: string(body), FromCache: true}, nil
		}
	}

	body, err := c.fetch(ctx, areaKey)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("fetch failed", zap.Error(err))
		return nil, nil
	}

	if c.cache != nil {
		if err := c.cache.SetPage(ctx, areaKey, body, c.opts.CacheTTL); err != nil {
			log.Warn("cache write failed", zap.Error(err))
		}
	}

	return &Page{Body: string(body)}, nil
}

// PageURL builds the wiki URL for an area key.
func (c *Client) PageURL(areaKey string) string {
	return c.opts.BaseURL + "/wiki/" + areaKey
}

func (c *Client) fetch(ctx context.Context, areaKey string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wiki: rate limit wait")
	}

	url := c.PageURL(areaKey)
	zap.L().Info("fetching wiki page", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: create request")
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("wiki: status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: read body")
	}
	return body, nil
}
