package cleaner

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	tableSel = cascadia.MustCompile("table")
	rowSel   = cascadia.MustCompile("tbody > tr")
)

// TableInfo describes one table found on a page.
type TableInfo struct {
	ID      string   `json:"id"`
	Classes []string `json:"classes,omitempty"`
	Rows    int      `json:"rows"`
	Hidden  bool     `json:"hidden"`
}

// ListTables returns every table on the page, including the ones hidden in
// comments. Hidden is set for tables that only exist after unwrapping.
func ListTables(rawHTML string) ([]TableInfo, error) {
	raw, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	visibleIDs := make(map[string]struct{})
	for _, t := range cascadia.QueryAll(raw, tableSel) {
		if id := attr(t, "id"); id != "" {
			visibleIDs[id] = struct{}{}
		}
	}

	doc, err := Load(rawHTML)
	if err != nil {
		return nil, err
	}
	var tables []TableInfo
	for _, root := range doc.Nodes {
		for _, t := range cascadia.QueryAll(root, tableSel) {
			id := attr(t, "id")
			_, shown := visibleIDs[id]
			tables = append(tables, TableInfo{
				ID:      id,
				Classes: strings.Fields(attr(t, "class")),
				Rows:    len(cascadia.QueryAll(t, rowSel)),
				Hidden:  id != "" && !shown,
			})
		}
	}
	return tables, nil
}

// ApplyCSSSelector parses rawHTML, unwraps hidden tables, matches elements
// against the given CSS selector, and returns the concatenated outer HTML of
// all matched elements.
//
// If no elements match, the original rawHTML is returned unchanged so that
// downstream processing still has something to work with.
func ApplyCSSSelector(rawHTML string, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	doc, err := Load(rawHTML)
	if err != nil {
		return "", err
	}

	var matches []*html.Node
	for _, root := range doc.Nodes {
		matches = append(matches, cascadia.QueryAll(root, sel)...)
	}
	if len(matches) == 0 {
		return rawHTML, nil
	}

	var buf bytes.Buffer
	for _, node := range matches {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
