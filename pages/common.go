package pages

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/bio"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var leadingNumberRe = regexp.MustCompile(`^[-+]?\d*\.?\d+`)

// playerTable is the shape shared by per-player stat tables: numeric
// cells, links on every anchored cell, and the player id and href on the
// "player" column (player_href is nil on unlinked rows such as team totals).
func playerTable(id string) extract.TableSpec {
	return extract.TableSpec{
		ID:        id,
		Default:   coerce.Numeric,
		AutoLinks: true,
		IDColumn:  "player",
	}
}

// nameDisplayTable is playerTable for the newer markup where the player
// column is "name_display".
func nameDisplayTable(id string) extract.TableSpec {
	return extract.TableSpec{
		ID:       id,
		Default:  coerce.Numeric,
		Links:    map[string]string{"name_display": "player", "team_name_abbr": "team"},
		IDColumn: "name_display",
		IDField:  "player_id",
		Drop:     []string{"ranker"},
	}
}

func metaPanel(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#meta").First()
}

func heading(s *goquery.Selection) string {
	return extract.Text(s.Find("h1").First())
}

// photoURL is the src of the first image, or nil.
func photoURL(s *goquery.Selection) any {
	if src, ok := s.Find("img").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	return nil
}

// leadingFloat reads the number at the start of text: "7.62 (4th of 32)"
// gives 7.62.
func leadingFloat(text string) any {
	return coerce.Decimal(leadingNumberRe.FindString(strings.TrimSpace(text)))
}

// setAnchor stores the entry's first link text and href under key and
// key+"_href". Without a link the entry text is used and the href is nil.
func setAnchor(out *models.Row, key string, e bio.Entry) {
	if a, ok := e.FirstAnchor(); ok {
		out.Set(key, coerce.Str(a.Text))
		out.Set(key+"_href", coerce.Str(a.Href))
		return
	}
	out.Set(key, coerce.Str(e.Text))
	out.Set(key+"_href", nil)
}

// cellByStat returns the cell of tr whose data-stat is stat.
func cellByStat(tr *goquery.Selection, stat string) *goquery.Selection {
	return tr.ChildrenFiltered(`[data-stat="` + stat + `"]`).First()
}

// prepend returns a copy of rec with key placed first.
func prepend(key string, v any, rec *models.Row) *models.Row {
	out := models.NewRow().Set(key, v)
	rec.Each(func(k string, val any) {
		out.Set(k, val)
	})
	return out
}
