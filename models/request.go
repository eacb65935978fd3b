package models

// ParseRequest is the payload for POST /api/v1/parse.
type ParseRequest struct {
	// Page is the registered page type ("player", "team_season", ...). Required.
	Page string `json:"page" yaml:"page" binding:"required"`

	// Params fill the page's path template and are echoed into the
	// document (year, team, player_id ...).
	Params map[string]string `json:"params,omitempty" yaml:"params"`

	// HTML, when set, is parsed as-is and nothing is fetched.
	HTML string `json:"html,omitempty" yaml:"html"`

	// URL overrides the URL built from the page's path template.
	URL string `json:"url,omitempty" yaml:"url" binding:"omitempty,url"`

	// Timeout is the maximum duration in seconds for fetching the page.
	// Default: 30. Max: 120.
	Timeout int `json:"timeout,omitempty" yaml:"timeout" binding:"omitempty,min=1,max=120"`

	// Stealth enables anti-bot-detection evasions on browser fetches.
	Stealth bool `json:"stealth,omitempty" yaml:"stealth"`

	// FetchMode controls the fetching strategy.
	// "auto" (default): race the HTTP engine against the browser.
	// "http": plain HTTP only.
	// "browser": headless Chrome only.
	FetchMode string `json:"fetch_mode,omitempty" yaml:"fetch_mode" binding:"omitempty,oneof=auto browser http"`

	// MaxAge is the oldest cached fetch, in milliseconds, that may be
	// reused. 0 always fetches.
	MaxAge int `json:"max_age,omitempty" yaml:"max_age" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ParseRequest) Defaults() {
	if r.Timeout == 0 {
		r.Timeout = 30
	}
	if r.FetchMode == "" {
		r.FetchMode = "auto"
	}
	if r.Params == nil {
		r.Params = map[string]string{}
	}
}

// TablesRequest is the payload for POST /api/v1/tables.
type TablesRequest struct {
	HTML string `json:"html" binding:"required"`

	// Selector optionally narrows the returned markup to matching elements.
	Selector string `json:"selector,omitempty"`
}
