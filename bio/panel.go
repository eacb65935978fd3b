// Package bio parses the free-text biography panels of profile pages:
// names, positions, body measurements, birth, draft, jersey history and
// transactions. The markup there has no data-stat attributes, so every
// parser works from labels and small token grammars and degrades to nil
// for anything it cannot read.
package bio

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/use-agent/gridiron/extract"
	"golang.org/x/net/html"
)

// Anchor is a link found in a panel value.
type Anchor struct {
	Text string
	Href string
}

// Entry is one "label → free text" pair. Label is "" for paragraphs that
// carry no <strong> label; Text is then the whole paragraph.
type Entry struct {
	Label   string
	Text    string
	Anchors []Anchor
	// Para is the paragraph the entry came from.
	Para *goquery.Selection
}

// Panel is the ordered list of entries harvested from a bio container.
type Panel []Entry

// Harvest reads every <p> and <li> under container. A paragraph with
// several <strong> labels yields one entry per label, each holding the
// text up to the next label.
func Harvest(container *goquery.Selection) Panel {
	var panel Panel
	container.Find("p, li").Each(func(_ int, para *goquery.Selection) {
		node := para.Get(0)
		labels := htmlquery.Find(node, "./strong")
		if len(labels) == 0 {
			panel = append(panel, Entry{
				Text:    extract.Text(para),
				Anchors: anchorsOf(htmlquery.Find(node, ".//a")),
				Para:    para,
			})
			return
		}
		if lead := leadingText(node, labels[0]); lead != "" {
			panel = append(panel, Entry{Text: lead, Para: para})
		}
		for _, strong := range labels {
			text, anchors := valueAfter(strong)
			panel = append(panel, Entry{
				Label:   cleanLabel(htmlquery.InnerText(strong)),
				Text:    text,
				Anchors: anchors,
				Para:    para,
			})
		}
	})
	return panel
}

// Lookup returns the first entry whose label matches, ignoring case and a
// trailing colon.
func (p Panel) Lookup(label string) (Entry, bool) {
	want := strings.ToLower(cleanLabel(label))
	for _, e := range p {
		if strings.ToLower(e.Label) == want {
			return e, true
		}
	}
	return Entry{}, false
}

// Value returns the text of the entry with label, or "".
func (p Panel) Value(label string) string {
	e, _ := p.Lookup(label)
	return e.Text
}

// Unlabeled returns the entries without a label.
func (p Panel) Unlabeled() []Entry {
	var out []Entry
	for _, e := range p {
		if e.Label == "" {
			out = append(out, e)
		}
	}
	return out
}

// FirstAnchor returns the first link of the entry.
func (e Entry) FirstAnchor() (Anchor, bool) {
	if len(e.Anchors) == 0 {
		return Anchor{}, false
	}
	return e.Anchors[0], true
}

func cleanLabel(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(extract.Clean(s), ":"))
}

// valueAfter collects the siblings following a label up to the next label.
func valueAfter(strong *html.Node) (string, []Anchor) {
	var b strings.Builder
	var anchors []Anchor
	for _, n := range htmlquery.Find(strong, "./following-sibling::node()") {
		if n.Type == html.ElementNode && n.Data == "strong" {
			break
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(htmlquery.InnerText(n))
		if n.Type == html.ElementNode && n.Data == "a" {
			anchors = append(anchors, anchorOf(n))
		} else if n.Type == html.ElementNode {
			anchors = append(anchors, anchorsOf(htmlquery.Find(n, ".//a"))...)
		}
	}
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(extract.Clean(b.String())), ":"))
	return text, anchors
}

// leadingText is the text before the first label, e.g. a name placed
// ahead of "Born:" inside the same paragraph.
func leadingText(p, first *html.Node) string {
	var b strings.Builder
	for n := p.FirstChild; n != nil && n != first; n = n.NextSibling {
		b.WriteString(htmlquery.InnerText(n))
	}
	return extract.Clean(b.String())
}

func anchorsOf(nodes []*html.Node) []Anchor {
	out := make([]Anchor, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, anchorOf(n))
	}
	return out
}

func anchorOf(n *html.Node) Anchor {
	return Anchor{
		Text: extract.Clean(htmlquery.InnerText(n)),
		Href: strings.TrimSpace(htmlquery.SelectAttr(n, "href")),
	}
}

// Lines splits the text of a selection into trimmed, non-empty lines,
// breaking on newlines and <br> elements.
func Lines(s *goquery.Selection) []string {
	var b strings.Builder
	for _, n := range s.Nodes {
		writeLines(&b, n)
	}
	var out []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = extract.Clean(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func writeLines(b *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
	case n.Type == html.ElementNode && n.Data == "br":
		b.WriteByte('\n')
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeLines(b, c)
		}
	}
}
