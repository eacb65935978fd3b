// Command gridiron-mcp exposes a running gridiron server to MCP clients
// over stdio.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type parseRequest struct {
	Page      string            `json:"page"`
	Params    map[string]string `json:"params,omitempty"`
	FetchMode string            `json:"fetch_mode,omitempty"`
	MaxAge    int               `json:"max_age,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type parseResponse struct {
	Success  bool            `json:"success"`
	URL      string          `json:"url"`
	Document json.RawMessage `json:"document"`
	Error    *apiError       `json:"error"`
}

type pagesResponse struct {
	Pages []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Path        string   `json:"path"`
		Params      []string `json:"params"`
	} `json:"pages"`
}

type tablesResponse struct {
	Success bool `json:"success"`
	Tables  []struct {
		ID     string `json:"id"`
		Rows   int    `json:"rows"`
		Hidden bool   `json:"hidden"`
	} `json:"tables"`
	HTML  string    `json:"html"`
	Error *apiError `json:"error"`
}

func main() {
	apiURL := os.Getenv("GRIDIRON_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	c := &client{
		baseURL: strings.TrimRight(apiURL, "/"),
		apiKey:  os.Getenv("GRIDIRON_API_KEY"),
		http:    &http.Client{Timeout: 150 * time.Second},
	}

	s := server.NewMCPServer("gridiron", "1.0.0", server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("parse_page",
		mcp.WithDescription("Fetch a Pro-Football-Reference page and return it as structured JSON. Call list_pages first to see the page types and the parameters each needs."),
		mcp.WithString("page",
			mcp.Required(),
			mcp.Description("Page type, e.g. 'player', 'team_season', 'draft', 'game'"),
		),
		mcp.WithString("params",
			mcp.Description("Comma-separated key=value page parameters, e.g. 'team=kan,year=2023'"),
		),
		mcp.WithString("fetch_mode",
			mcp.Description("Fetch strategy: 'auto' (default), 'http' or 'browser'"),
			mcp.Enum("auto", "http", "browser"),
		),
		mcp.WithNumber("max_age",
			mcp.Description("Reuse a cached fetch up to this many milliseconds old"),
		),
	), c.handleParse)

	s.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List the supported page types with their URL templates and parameters."),
	), c.handleListPages)

	s.AddTool(mcp.NewTool("list_tables",
		mcp.WithDescription("List every table in a page's HTML, including tables hidden inside HTML comments."),
		mcp.WithString("html",
			mcp.Required(),
			mcp.Description("Raw page HTML"),
		),
		mcp.WithString("selector",
			mcp.Description("Optional CSS selector; the matching unwrapped markup is returned too"),
		),
	), c.handleListTables)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func (c *client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func (c *client) handleParse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("page is required"), nil
	}
	params, err := splitParams(request.GetString("params", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp parseResponse
	err = c.do(ctx, http.MethodPost, "/api/v1/parse", parseRequest{
		Page:      page,
		Params:    params,
		FetchMode: request.GetString("fetch_mode", ""),
		MaxAge:    request.GetInt("max_age", 0),
	}, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !resp.Success {
		msg := "parse failed"
		if resp.Error != nil {
			msg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
		}
		return mcp.NewToolResultError(msg), nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, resp.Document, "", "  "); err != nil {
		return mcp.NewToolResultText(string(resp.Document)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Source: %s\n\n%s", resp.URL, pretty.String())), nil
}

func (c *client) handleListPages(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp pagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/pages", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var sb strings.Builder
	for _, p := range resp.Pages {
		fmt.Fprintf(&sb, "%s: %s\n  path: %s\n", p.Name, p.Description, p.Path)
		if len(p.Params) > 0 {
			fmt.Fprintf(&sb, "  params: %s\n", strings.Join(p.Params, ", "))
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *client) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, err := request.RequireString("html")
	if err != nil {
		return mcp.NewToolResultError("html is required"), nil
	}
	var resp tablesResponse
	err = c.do(ctx, http.MethodPost, "/api/v1/tables", map[string]string{
		"html":     html,
		"selector": request.GetString("selector", ""),
	}, &resp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !resp.Success {
		msg := "listing tables failed"
		if resp.Error != nil {
			msg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
		}
		return mcp.NewToolResultError(msg), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d tables\n", len(resp.Tables))
	for _, t := range resp.Tables {
		hidden := ""
		if t.Hidden {
			hidden = " (hidden in comment)"
		}
		fmt.Fprintf(&sb, "- %s: %d rows%s\n", t.ID, t.Rows, hidden)
	}
	if resp.HTML != "" {
		sb.WriteString("\n")
		sb.WriteString(resp.HTML)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// splitParams parses "team=kan,year=2023".
func splitParams(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("param %q: want key=value", part)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
