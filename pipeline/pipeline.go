// Package pipeline turns a parse request into a document: it resolves the
// page type, builds the URL, consults the fetch cache, paces and performs
// the fetch, and runs the page composer over the HTML.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/gridiron/cache"
	"github.com/use-agent/gridiron/engine"
	"github.com/use-agent/gridiron/metrics"
	"github.com/use-agent/gridiron/models"
	"github.com/use-agent/gridiron/pages"
	"golang.org/x/time/rate"
)

// Options configures a Pipeline. Engines is keyed by fetch mode
// ("auto", "http", "browser"); a mode with no engine falls back to "auto".
type Options struct {
	Engines           map[string]engine.Engine
	Cache             *cache.Cache
	Metrics           *metrics.Metrics
	BaseURL           string
	DefaultTimeout    time.Duration
	MaxTimeout        time.Duration
	RequestsPerMinute float64
}

// Pipeline is safe for concurrent use. All fetches share one limiter so
// that the server as a whole stays under the site's request budget.
type Pipeline struct {
	engines        map[string]engine.Engine
	cache          *cache.Cache
	metrics        *metrics.Metrics
	limiter        *rate.Limiter
	baseURL        string
	defaultTimeout time.Duration
	maxTimeout     time.Duration
}

// New creates a Pipeline. A non-positive RequestsPerMinute disables pacing.
func New(opts Options) *Pipeline {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerMinute/60), 1)
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 30 * time.Second
	}
	if opts.MaxTimeout <= 0 {
		opts.MaxTimeout = 120 * time.Second
	}
	return &Pipeline{
		engines:        opts.Engines,
		cache:          opts.Cache,
		metrics:        opts.Metrics,
		limiter:        limiter,
		baseURL:        opts.BaseURL,
		defaultTimeout: opts.DefaultTimeout,
		maxTimeout:     opts.MaxTimeout,
	}
}

// Run executes req. The response is never nil; on failure Success is false,
// Error is set and the returned error carries the same code.
func (p *Pipeline) Run(ctx context.Context, req models.ParseRequest) (*models.ParseResponse, error) {
	start := time.Now()
	req.Defaults()
	resp := &models.ParseResponse{Page: req.Page, URL: req.URL}

	fail := func(err error) (*models.ParseResponse, error) {
		pe := AsParseError(err)
		resp.Success = false
		resp.Document = nil
		resp.Error = pe.ToDetail()
		resp.Timing.TotalMs = time.Since(start).Milliseconds()
		slog.Warn("parse failed", "page", req.Page, "url", resp.URL, "code", pe.Code, "error", err)
		return resp, pe
	}

	page, err := pages.Lookup(req.Page)
	if err != nil {
		return fail(err)
	}
	params := pages.Params(req.Params)

	html := req.HTML
	if html == "" {
		if resp.URL == "" {
			if resp.URL, err = page.URL(p.baseURL, params); err != nil {
				return fail(err)
			}
		}
		fetchStart := time.Now()
		result, status, err := p.fetch(ctx, page, resp.URL, req)
		resp.Timing.FetchMs = time.Since(fetchStart).Milliseconds()
		resp.CacheStatus = status
		if err != nil {
			return fail(err)
		}
		html = result.HTML
		resp.FinalURL = result.FinalURL
		resp.StatusCode = result.StatusCode
		resp.EngineUsed = result.EngineName
	}

	parseStart := time.Now()
	doc, err := page.Parse(html, params)
	elapsed := time.Since(parseStart)
	p.metrics.ObserveParse(page.Name, elapsed, err)
	resp.Timing.ParseMs = elapsed.Milliseconds()
	if err != nil {
		return fail(err)
	}

	resp.Success = true
	resp.Document = doc
	resp.Timing.TotalMs = time.Since(start).Milliseconds()
	return resp, nil
}

// fetch returns the page HTML and the cache status ("hit", "miss" or empty
// when the cache was not consulted).
func (p *Pipeline) fetch(ctx context.Context, page pages.Page, url string, req models.ParseRequest) (*engine.FetchResult, string, error) {
	key := cache.Key(url)
	status := ""
	if p.cache != nil && req.MaxAge > 0 {
		if cached, hit := p.cache.Get(key, time.Duration(req.MaxAge)*time.Millisecond); hit {
			p.metrics.ObserveCache(true)
			return cached, "hit", nil
		}
		p.metrics.ObserveCache(false)
		status = "miss"
	}

	eng := p.engineFor(req.FetchMode)
	if eng == nil {
		return nil, status, models.NewParseError(models.ErrCodeInternal,
			fmt.Sprintf("no fetch engine for mode %q", req.FetchMode), nil)
	}

	timeout := time.Duration(req.Timeout) * time.Second
	if timeout <= 0 {
		timeout = p.defaultTimeout
	}
	if timeout > p.maxTimeout {
		timeout = p.maxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, status, models.NewParseError(models.ErrCodeTimeout, "timed out waiting for a fetch slot", err)
	}

	start := time.Now()
	result, err := eng.Fetch(ctx, &engine.FetchRequest{
		URL:     url,
		Timeout: timeout,
		Stealth: req.Stealth,
		WaitFor: page.WaitFor,
	})
	engineName := ""
	if result != nil {
		engineName = result.EngineName
	}
	p.metrics.ObserveFetch(engineName, time.Since(start), err)
	if err != nil {
		if ctx.Err() != nil && !errors.As(err, new(*models.ParseError)) {
			return nil, status, models.NewParseError(models.ErrCodeTimeout, "fetch timed out", err)
		}
		return nil, status, err
	}
	if result.EngineName == "" {
		result.EngineName = eng.Name()
	}

	if p.cache != nil {
		p.cache.Set(key, result)
	}
	slog.Info("page fetched", "page", page.Name, "url", url, "engine", result.EngineName, "elapsed", time.Since(start))
	return result, status, nil
}

func (p *Pipeline) engineFor(mode string) engine.Engine {
	if e, ok := p.engines[mode]; ok {
		return e
	}
	return p.engines["auto"]
}

// AsParseError returns err as a *models.ParseError, wrapping anything else
// as an internal error.
func AsParseError(err error) *models.ParseError {
	var pe *models.ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return models.NewParseError(models.ErrCodeInternal, err.Error(), err)
}
