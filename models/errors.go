package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	// ErrCodePageShape is returned when a page's single mandatory anchor
	// table is absent, i.e. the HTML is not the page type it was parsed as.
	ErrCodePageShape   = "PAGE_SHAPE_MISMATCH"
	ErrCodeUnknownPage = "UNKNOWN_PAGE_TYPE"

	ErrCodeTimeout      = "FETCH_TIMEOUT"
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ParseError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(code, message string, err error) *ParseError {
	return &ParseError{Code: code, Message: message, Err: err}
}

// PageShapeError reports a missing mandatory table on the named page type.
func PageShapeError(pageType, selector string) *ParseError {
	return NewParseError(ErrCodePageShape,
		fmt.Sprintf("%s page has no %s", pageType, selector), nil)
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ParseError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
