// Package engine fetches page HTML. Engines of different weight (plain
// HTTP, headless browser, stealth browser) share one interface and can be
// raced by a Dispatcher.
package engine

import (
	"context"
	"net/http"
	"time"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http", "rod", "rod-stealth").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Cookies []http.Cookie
	Timeout time.Duration
	Stealth bool

	// WaitFor is a CSS selector that marks the page as rendered. Browser
	// engines wait for it; the HTTP engine ignores it.
	WaitFor string
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	Title      string
	StatusCode int
	FinalURL   string
	EngineName string
}

// Func adapts a plain function to Engine.
type Func struct {
	EngineName string
	Fn         func(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

func (f Func) Name() string { return f.EngineName }

func (f Func) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	return f.Fn(ctx, req)
}
