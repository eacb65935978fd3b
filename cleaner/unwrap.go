package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragmentContext is the element hidden tables are parsed under. Sports
// Reference wraps them in a div, so a div context yields the same tree the
// browser would build once the comment markers are removed.
var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

// Load parses rawHTML and unwraps comment-hidden tables.
func Load(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	Unwrap(doc)
	return doc, nil
}

// Unwrap replaces every comment node whose text contains a table-opening
// tag with the nodes parsed from that text, in place. It returns the number
// of comments replaced. Comments that fail to parse are left untouched, and
// a second call finds nothing left to replace.
func Unwrap(doc *goquery.Document) int {
	var hidden []*html.Node
	for _, root := range doc.Nodes {
		collectHiddenTables(root, &hidden)
	}

	replaced := 0
	for _, c := range hidden {
		parent := c.Parent
		if parent == nil {
			continue
		}
		nodes, err := html.ParseFragment(strings.NewReader(c.Data), fragmentContext)
		if err != nil || len(nodes) == 0 {
			continue
		}
		for _, n := range nodes {
			parent.InsertBefore(n, c)
		}
		parent.RemoveChild(c)
		replaced++
	}
	return replaced
}

// UnwrapHTML is Unwrap over a string, returning the rendered document.
// On a parse failure the input is returned unchanged.
func UnwrapHTML(rawHTML string) string {
	doc, err := Load(rawHTML)
	if err != nil {
		return rawHTML
	}
	out, err := doc.Html()
	if err != nil {
		return rawHTML
	}
	return out
}

func collectHiddenTables(n *html.Node, out *[]*html.Node) {
	if n.Type == html.CommentNode && hasTableTag(n.Data) {
		*out = append(*out, n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHiddenTables(c, out)
	}
}

func hasTableTag(s string) bool {
	return strings.Contains(strings.ToLower(s), "<table")
}
