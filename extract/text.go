// Package extract turns Sports Reference tables into ordered records.
//
// Tables are described declaratively with a TableSpec; Extract walks the
// rows, skips header and divider rows, coerces each cell per column policy
// and attaches link and id siblings. Nothing here keeps state between calls.
package extract

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u2009", " ", "\u200b", "")

// Clean replaces non-breaking spaces and collapses runs of whitespace.
func Clean(s string) string {
	return strings.Join(strings.Fields(spaceReplacer.Replace(s)), " ")
}

// Text returns the cleaned text of a selection.
func Text(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return Clean(s.Text())
}

// OwnText returns the cleaned text of a selection's direct text children,
// ignoring nested elements.
func OwnText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return Clean(b.String())
}

// Snakify lowercases s and joins its alphanumeric runs with underscores:
// "Points For:" becomes "points_for".
func Snakify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// MultiReplace removes every old string from s.
func MultiReplace(s string, olds ...string) string {
	for _, o := range olds {
		s = strings.ReplaceAll(s, o, "")
	}
	return s
}
