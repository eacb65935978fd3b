package models

// ParseResponse is the response for POST /api/v1/parse.
type ParseResponse struct {
	// Success indicates whether the page was fetched and parsed.
	Success bool `json:"success"`

	// Page is the page type the document was parsed as.
	Page string `json:"page"`

	// URL is the page that was fetched; empty when HTML was supplied.
	URL string `json:"url,omitempty"`

	// FinalURL is the URL after following all redirects.
	FinalURL string `json:"final_url,omitempty"`

	// StatusCode is the HTTP status code of the fetched page.
	StatusCode int `json:"status_code,omitempty"`

	// Document is the composed page document.
	Document *Document `json:"document,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus is "hit" or "miss" when the fetch cache was consulted.
	CacheStatus string `json:"cache_status,omitempty"`

	// EngineUsed is the fetch engine that produced the HTML
	// ("http", "rod", "rod-stealth").
	EngineUsed string `json:"engine_used,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent fetching the page.
	FetchMs int64 `json:"fetch_ms"`

	// ParseMs is the time spent unwrapping and parsing.
	ParseMs int64 `json:"parse_ms"`
}

// TablesResponse is the response for POST /api/v1/tables.
type TablesResponse struct {
	Success bool         `json:"success"`
	Tables  []TableEntry `json:"tables"`
	// HTML is the selected markup when a selector was given.
	HTML  string       `json:"html,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// TableEntry describes one table found on a page.
type TableEntry struct {
	ID      string   `json:"id"`
	Classes []string `json:"classes,omitempty"`
	Rows    int      `json:"rows"`
	Hidden  bool     `json:"hidden"`
}

// PageType describes one supported page type in GET /api/v1/pages.
type PageType struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Path        string   `json:"path"`
	Params      []string `json:"params,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
