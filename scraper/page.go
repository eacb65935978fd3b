package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/gridiron/engine"
	"github.com/use-agent/gridiron/models"
	"github.com/ysmood/gson"
)

// Fetch renders req.URL in a pooled tab and returns the page HTML. It
// satisfies engine.RodFetchFunc.
//
// Stealth scripts and the request hijacker are installed before navigation,
// since both only apply to navigations that start after them. When the
// request names a WaitFor selector the fetch waits for it, bounded by the
// configured wait timeout; pages whose anchor tables are hidden in comments
// never render the selector, so a missed wait falls back to DOM stability
// instead of failing.
func (s *Scraper) Fetch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	// ── 1. Timeout guard ──────────────────────────────────────────────
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = s.fetchCfg.DefaultTimeout
	}
	if timeout > s.fetchCfg.MaxTimeout {
		timeout = s.fetchCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 2. Acquire a tab from the pool ────────────────────────────────
	s.activePages.Add(1)
	defer s.activePages.Add(-1)

	page, err := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return nil, models.NewParseError(models.ErrCodeBrowserCrash, "failed to acquire page from pool", err)
	}
	// ── 3. Cleanup: unload the page and return the tab ────────────────
	// about:blank uses the page without the request context so cleanup
	// still runs after a timeout. Leaving a stats page loaded keeps its
	// whole DOM alive in the pooled tab.
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		s.pagePool.Put(page)
	}()

	// ── 4. Stealth: must be registered before Navigate ────────────────
	if req.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	// ── 5. Headers and cookies ────────────────────────────────────────
	if len(req.Headers) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(req.Headers)}.Call(page)
	}
	for _, c := range req.Cookies {
		// Cookies without a domain are scoped to the target host.
		domain := c.Domain
		if domain == "" {
			if u, parseErr := url.Parse(req.URL); parseErr == nil {
				domain = u.Host
			}
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		_, _ = proto.NetworkSetCookie{Name: c.Name, Value: c.Value, Domain: domain, Path: path}.Call(page)
	}

	// ── 6. Resource blocking: also before Navigate ────────────────────
	// Stats pages are plain tables; images, fonts and the ad stack only
	// slow the load down.
	if router := s.blocked.hijack(page); router != nil {
		defer func() { _ = router.Stop() }()
	}

	// ── 7. Navigate with the request context bound ────────────────────
	p := page.Context(ctx)
	if err := p.Navigate(req.URL); err != nil {
		return nil, categorizeError(err, "navigation failed")
	}
	// ── 8. Wait for the page's anchor, then DOM stability ─────────────
	s.waitRendered(p, req.WaitFor)

	// ── 9. Status code, best-effort ───────────────────────────────────
	// Read from the navigation timing entry. Listening for
	// NetworkResponseReceived would enable interception that clashes with
	// the hijack router's Fetch domain.
	statusCode := 0
	if res, evalErr := p.Eval(`() => {
		try {
			const nav = performance.getEntriesByType("navigation");
			if (nav.length > 0) return nav[0].responseStatus || 0;
		} catch (e) {}
		return 0;
	}`); evalErr == nil {
		statusCode = res.Value.Int()
	}

	// ── 10. Extract ───────────────────────────────────────────────────
	// The serialized DOM still carries the commented-out tables; the
	// unwrapper restores them at parse time.
	html, err := p.HTML()
	if err != nil {
		return nil, categorizeError(err, "failed to read page HTML")
	}
	finalURL := evalString(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	return &engine.FetchResult{
		HTML:       html,
		Title:      evalString(p, `() => document.title`),
		StatusCode: statusCode,
		FinalURL:   finalURL,
	}, nil
}

// waitRendered waits for selector with its own short timeout, since a
// selector inside a comment never matches, then lets the DOM settle.
func (s *Scraper) waitRendered(p *rod.Page, selector string) {
	if selector != "" {
		wait := s.fetchCfg.WaitTimeout
		if wait <= 0 {
			wait = 10 * time.Second
		}
		if _, err := p.Timeout(wait).Element(selector); err == nil {
			return
		}
		slog.Debug("wait selector not found, waiting for DOM to settle", "selector", selector)
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, using current DOM", "error", err)
	}
}

// evalString runs js and returns its string result, or "" on error.
func evalString(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts plain headers to the CDP header map.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError maps browser errors onto API error codes. Deadline and
// cancellation both surface as timeouts; everything else is a navigation
// failure the dispatcher may retry on another engine.
func categorizeError(err error, msg string) *models.ParseError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewParseError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewParseError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewParseError(models.ErrCodeNavigation, msg, err)
	}
}
