package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/models"
)

// GeneralCategory is assigned to spanning cells marked as empty.
const GeneralCategory = "general"

// HeaderSpan is one cell of a category header row.
type HeaderSpan struct {
	Label string
	Span  int
	// Empty marks a deliberately blank category cell.
	Empty bool
}

// OverHeaderMap assigns a category to every data column of a table with a
// spanning category header row.
type OverHeaderMap struct {
	// Categories[i] is the category of data column i, "" where the source
	// cell was blank without the empty marker.
	Categories []string
	// Columns[i] is the data-stat token of data column i.
	Columns []string

	index map[string]int
}

// BuildIndexMap reads the category and column header rows from table's
// thead. ok is false when the table has no category row.
func BuildIndexMap(table *goquery.Selection) (m OverHeaderMap, ok bool) {
	thead := table.ChildrenFiltered("thead")
	over := thead.Find("tr.over_header").First().ChildrenFiltered("th")
	if over.Length() == 0 {
		over = thead.Find("th.over_header")
	}
	if over.Length() == 0 {
		return OverHeaderMap{}, false
	}

	spans := make([]HeaderSpan, 0, over.Length())
	over.Each(func(_ int, th *goquery.Selection) {
		stat := strings.ToLower(strings.TrimSpace(th.AttrOr("data-stat", "")))
		label := stat
		if label == "" {
			label = Snakify(Text(th))
		}
		span, err := strconv.Atoi(strings.TrimSpace(th.AttrOr("colspan", "1")))
		if err != nil || span < 1 {
			span = 1
		}
		spans = append(spans, HeaderSpan{
			Label: label,
			Span:  span,
			Empty: strings.Contains(stat, "header_empty"),
		})
	})

	var columns []string
	thead.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("over_header") {
			return
		}
		tr.ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
			if th.HasClass("over_header") {
				return
			}
			if stat, has := th.Attr("data-stat"); has {
				columns = append(columns, stat)
			}
		})
	})
	return NewOverHeaderMap(spans, columns), true
}

// NewOverHeaderMap walks spans left to right, giving every column index in
// a span the span's category. The result has exactly len(columns) entries.
func NewOverHeaderMap(spans []HeaderSpan, columns []string) OverHeaderMap {
	cats := make([]string, 0, len(columns))
	for _, s := range spans {
		label := s.Label
		if s.Empty {
			label = GeneralCategory
		}
		for i := 0; i < s.Span; i++ {
			cats = append(cats, label)
		}
	}
	for len(cats) < len(columns) {
		cats = append(cats, "")
	}
	cats = cats[:len(columns)]

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return OverHeaderMap{Categories: cats, Columns: columns, index: index}
}

// Category returns the category of data column i. Indexes without a
// category fall back to the category of column 0.
func (m OverHeaderMap) Category(i int) string {
	if i >= 0 && i < len(m.Categories) && m.Categories[i] != "" {
		return m.Categories[i]
	}
	if len(m.Categories) > 0 && m.Categories[0] != "" {
		return m.Categories[0]
	}
	return GeneralCategory
}

// Group partitions rec into one sub-record per category, in first-seen
// order. Keys that are not columns (such as href siblings) follow the
// column before them. Every key lands in exactly one category.
func (m OverHeaderMap) Group(rec *models.Row) *models.Row {
	out := models.NewRow()
	last := 0
	rec.Each(func(key string, v any) {
		idx, ok := m.index[key]
		if !ok {
			idx = last
		}
		last = idx
		cat := m.Category(idx)
		sub := out.Sub(cat)
		if sub == nil {
			sub = models.NewRow()
			out.Set(cat, sub)
		}
		sub.Set(key, v)
	})
	return out
}
