package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/models"
)

// KeyValue reads a label/value table: the first cell of each row is the
// label, the second the value. Labels are snakified; linked values get a
// "<label>_href" sibling. Header rows (class thead or a single cell) are
// skipped.
func KeyValue(table *goquery.Selection) *models.Row {
	out := models.NewRow()
	if table == nil || table.Length() == 0 {
		return out
	}
	Rows(table.First(), Whole).Each(func(_ int, tr *goquery.Selection) {
		if HasClass(tr, defaultSkipClasses...) {
			return
		}
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() < 2 {
			return
		}
		label := cells.First()
		if stat := label.AttrOr("data-stat", ""); stat == "onecell" {
			return
		}
		key := Snakify(Text(label))
		if key == "" {
			return
		}
		val := cells.Eq(1)
		out.Set(key, coerce.Str(Text(val)))
		if href := Href(val); href != nil {
			out.Set(key+"_href", href)
		}
	})
	return out
}

// Labeled reads a table whose rows are keyed by the text of labelColumn
// (team-vs-opponent stat tables). Each label maps to the rest of its row
// extracted with spec.
func Labeled(table *goquery.Selection, spec TableSpec, labelColumn string) *models.Row {
	out := models.NewRow()
	if table == nil || table.Length() == 0 {
		return out
	}
	c := spec.compile()
	Rows(table.First(), spec.Container).Each(func(_ int, tr *goquery.Selection) {
		if c.skipped(tr) {
			return
		}
		cells := tr.ChildrenFiltered("th, td")
		label := Text(cells.Filter(`[data-stat="` + labelColumn + `"]`))
		if label == "" {
			return
		}
		rec := c.record(cells)
		rec.Delete(c.key(labelColumn))
		out.Set(label, rec)
	})
	return out
}
