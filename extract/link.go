package extract

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultIDAttr is the cell attribute Sports Reference uses for opaque
// player ids.
const DefaultIDAttr = "data-append-csv"

// Href returns the href of the first anchor inside cell (or cell itself if
// it is an anchor), or nil. Relative paths are returned verbatim.
func Href(cell *goquery.Selection) any {
	if h := HrefString(cell); h != "" {
		return h
	}
	return nil
}

// HrefString is Href returning "" when there is no link.
func HrefString(cell *goquery.Selection) string {
	if cell == nil || cell.Length() == 0 {
		return ""
	}
	a := cell.First()
	if goquery.NodeName(a) != "a" {
		a = a.Find("a").First()
	}
	href, _ := a.Attr("href")
	return strings.TrimSpace(href)
}

// LinkText returns the text of the first anchor inside cell.
func LinkText(cell *goquery.Selection) string {
	return Text(cell.Find("a").First())
}

// ID returns the value of attr on cell itself, or nil when it is absent
// or empty.
func ID(cell *goquery.Selection, attr string) any {
	if cell == nil || cell.Length() == 0 {
		return nil
	}
	if v := strings.TrimSpace(cell.AttrOr(attr, "")); v != "" {
		return v
	}
	return nil
}

// IDFromHref derives an id from the last path segment of href:
// "/players/J/JackLa00.htm" gives "JackLa00".
func IDFromHref(href string) string {
	if href == "" {
		return ""
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	base := path.Base(strings.TrimRight(href, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
