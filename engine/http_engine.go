package engine

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	tls "github.com/refraction-networking/utls"
	"github.com/use-agent/gridiron/models"
	"golang.org/x/net/html"
)

const (
	// userAgent matches the Chrome build the TLS fingerprint imitates, so
	// the header and the handshake tell the same story.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	// maxBody caps a page read at 10 MB.
	maxBody   = 10 << 20
)

// HTTPEngine fetches pages with a single GET over a Chrome-like TLS
// handshake. Stats pages are served complete in the initial HTML, hidden
// tables included, so this engine usually wins.
type HTTPEngine struct {
	client  *http.Client
	timeout time.Duration
}

// chromeH1Spec is Chrome's ClientHello with ALPN limited to http/1.1, since
// http.Transport cannot speak h2 over a utls connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		// Not expected with a pinned utls version.
		return
	}
	// Chrome offers h2 first. Keep only http/1.1 in ALPN so the server
	// never picks a protocol http.Transport cannot frame over utls.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// NewHTTPEngine creates an HTTPEngine. timeout caps each fetch when the
// request carries none.
func NewHTTPEngine(timeout time.Duration) *HTTPEngine {
	transport := &http.Transport{
		// Plain TCP dial, then a utls handshake with the h1-only Chrome
		// preset in place of crypto/tls.
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("http_engine: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}
	return &HTTPEngine{
		timeout: timeout,
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

func (e *HTTPEngine) Name() string { return "http" }

func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	// The engine timeout is a ceiling: a slow HTTP fetch should lose the
	// race to a browser tier, not hold the request open.
	timeout := req.Timeout
	if timeout <= 0 || (e.timeout > 0 && timeout > e.timeout) {
		timeout = e.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, models.NewParseError(models.ErrCodeInvalidInput, "build request", err)
	}
	// Browser-like headers; request headers override them below.
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")
	httpReq.Header.Set("Accept-Encoding", "identity") // no decompression step
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	for i := range req.Cookies {
		httpReq.AddCookie(&req.Cookies[i])
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		// A context error means our deadline fired, not that the host is
		// unreachable.
		if ctx.Err() != nil {
			return nil, models.NewParseError(models.ErrCodeTimeout, "http fetch timed out", err)
		}
		return nil, models.NewParseError(models.ErrCodeNavigation, "http fetch failed", err)
	}
	defer resp.Body.Close()

	// Bounded read so a misbehaving host cannot exhaust memory.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("http_engine: read body: %w", err)
	}

	// Anything other than a successful HTML page is a failure, so the
	// dispatcher can escalate. 429 is kept distinct: the site answers it
	// to clients over its request budget and a browser would fare no better.
	ct := resp.Header.Get("Content-Type")
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, models.NewParseError(models.ErrCodeRateLimited,
			"site rate limit hit; back off before fetching again", nil)
	case resp.StatusCode >= 400:
		return nil, models.NewParseError(models.ErrCodeNavigation,
			fmt.Sprintf("status %d for %s", resp.StatusCode, req.URL), nil)
	case !isHTMLContentType(ct):
		return nil, models.NewParseError(models.ErrCodeNavigation,
			fmt.Sprintf("non-html content-type %q", ct), nil)
	}

	page := string(body)
	return &FetchResult{
		HTML:       page,
		Title:      extractTitle(page),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		EngineName: e.Name(),
	}, nil
}

// isHTMLContentType reports whether the Content-Type header is HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}

// extractTitle returns the text of the first <title> element using the
// tokenizer, without building a tree.
func extractTitle(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "title" {
				inTitle = true
			}
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			if inTitle {
				return ""
			}
		}
	}
}
