package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/models"
)

// Container names where a table's data rows live.
type Container string

const (
	// Body reads rows from the table's tbody sections.
	Body Container = "tbody"
	// Whole reads every row of the table, for small label/value tables
	// that have no header or footer.
	Whole Container = "table"
	// Foot reads rows from the tfoot section (career totals).
	Foot Container = "tfoot"
)

var (
	defaultSkipClasses    = []string{"thead", "over_header"}
	defaultDividerMarkers = []string{"Playoffs"}
)

// TableSpec declares how one table shape is read. Column names are the
// cells' data-stat tokens. A spec is a plain value and is never mutated by
// the extractor, so one spec can be shared across page types.
type TableSpec struct {
	// ID is the table element's id.
	ID string
	// Container defaults to Body.
	Container Container
	// SkipClasses drops rows carrying any of these classes. Defaults to
	// "thead" and "over_header".
	SkipClasses []string
	// DividerMarkers are texts that, like empty cells, do not count as
	// data when deciding whether a row is a divider. Defaults to "Playoffs".
	DividerMarkers []string

	Int     []string
	Float   []string
	Percent []string
	Numeric []string
	// Default is the policy for columns not listed above.
	Default coerce.Policy

	// Links maps a column to the field whose "<field>_href" sibling holds
	// the cell's first href (nil when there is no anchor).
	Links map[string]string
	// AutoLinks adds "<column>_href" for any other cell that has an anchor.
	AutoLinks bool
	// Titles lists columns whose anchor title is copied to "<column>_title".
	Titles []string

	// IDColumn is the identity column; IDAttr (default data-append-csv) is
	// read from its cell into IDField (default "<column>_id"). The identity
	// column is always a link column: unless Links names it, its href goes
	// to "<column>_href".
	IDColumn string
	IDAttr   string
	IDField  string

	// Renames maps a column to its output key.
	Renames map[string]string
	// Drop lists columns that are never emitted.
	Drop []string
	// KeepEmpty keeps divider rows.
	KeepEmpty bool
}

// Find returns the table with the given id.
func Find(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find(`table[id="` + id + `"]`).First()
}

// Extract reads the spec's table from doc. A missing table yields an empty
// slice.
func Extract(doc *goquery.Document, spec TableSpec) []*models.Row {
	return ExtractTable(Find(doc, spec.ID), spec)
}

// ExtractTable reads rows from an already located table. spec.ID is
// ignored.
func ExtractTable(table *goquery.Selection, spec TableSpec) []*models.Row {
	return ExtractTableFunc(table, spec, nil)
}

// RowFunc sees each extracted record next to its source row. It may amend
// rec; returning false drops the row.
type RowFunc func(tr *goquery.Selection, rec *models.Row) bool

// ExtractTableFunc is ExtractTable with a per-row hook for page-specific
// fields that need the raw markup.
func ExtractTableFunc(table *goquery.Selection, spec TableSpec, fn RowFunc) []*models.Row {
	out := make([]*models.Row, 0)
	if table == nil || table.Length() == 0 {
		return out
	}
	c := spec.compile()
	Rows(table.First(), spec.Container).Each(func(_ int, tr *goquery.Selection) {
		if c.skipped(tr) {
			return
		}
		cells := tr.ChildrenFiltered("th, td")
		if !spec.KeepEmpty && c.divider(cells) {
			return
		}
		rec := c.record(cells)
		if fn != nil && !fn(tr, rec) {
			return
		}
		if rec.Len() > 0 {
			out = append(out, rec)
		}
	})
	return out
}

// ExtractRow reads a single row with spec, without the skip rules.
func ExtractRow(tr *goquery.Selection, spec TableSpec) *models.Row {
	return spec.compile().record(tr.ChildrenFiltered("th, td"))
}

// Rows returns the rows of table held by container.
func Rows(table *goquery.Selection, container Container) *goquery.Selection {
	switch container {
	case Whole:
		return table.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")
	case Foot:
		return table.ChildrenFiltered("tfoot").ChildrenFiltered("tr")
	default:
		return table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	}
}

// HasClass reports whether s carries any of the classes.
func HasClass(s *goquery.Selection, classes ...string) bool {
	for _, c := range classes {
		if s.HasClass(c) {
			return true
		}
	}
	return false
}

type set map[string]struct{}

func newSet(items ...[]string) set {
	s := make(set)
	for _, list := range items {
		for _, it := range list {
			s[it] = struct{}{}
		}
	}
	return s
}

func (s set) has(k string) bool {
	_, ok := s[k]
	return ok
}

type compiled struct {
	spec     TableSpec
	policies map[string]coerce.Policy
	skip     []string
	markers  set
	links    map[string]string
	drop     set
	titles   set
	idAttr   string
	idField  string
}

func (spec TableSpec) compile() *compiled {
	c := &compiled{
		spec:     spec,
		policies: make(map[string]coerce.Policy),
		skip:     spec.SkipClasses,
		links:    make(map[string]string, len(spec.Links)+1),
		drop:     newSet(spec.Drop),
		titles:   newSet(spec.Titles),
		idAttr:   spec.IDAttr,
		idField:  spec.IDField,
	}
	if c.skip == nil {
		c.skip = defaultSkipClasses
	}
	if spec.DividerMarkers == nil {
		c.markers = newSet(defaultDividerMarkers)
	} else {
		c.markers = newSet(spec.DividerMarkers)
	}
	for _, k := range spec.Numeric {
		c.policies[k] = coerce.Numeric
	}
	for _, k := range spec.Percent {
		c.policies[k] = coerce.Percent
	}
	for _, k := range spec.Float {
		c.policies[k] = coerce.Float
	}
	for _, k := range spec.Int {
		c.policies[k] = coerce.Int
	}
	for col, field := range spec.Links {
		c.links[col] = field
	}
	if _, ok := c.links[spec.IDColumn]; spec.IDColumn != "" && !ok {
		c.links[spec.IDColumn] = c.key(spec.IDColumn)
	}
	if c.idAttr == "" {
		c.idAttr = DefaultIDAttr
	}
	if c.idField == "" && spec.IDColumn != "" {
		c.idField = c.key(spec.IDColumn) + "_id"
	}
	return c
}

func (c *compiled) key(column string) string {
	if k, ok := c.spec.Renames[column]; ok {
		return k
	}
	return column
}

func (c *compiled) policy(column string) coerce.Policy {
	if p, ok := c.policies[column]; ok {
		return p
	}
	return c.spec.Default
}

func (c *compiled) skipped(tr *goquery.Selection) bool {
	return HasClass(tr, c.skip...)
}

// divider reports whether the row carries no data: no recognized cells,
// a lone "onecell" label, or only empty/marker texts.
func (c *compiled) divider(cells *goquery.Selection) bool {
	if cells.Length() == 1 && cells.HasClass("onecell") {
		return true
	}
	seen := false
	data := false
	cells.EachWithBreak(func(_ int, td *goquery.Selection) bool {
		col := td.AttrOr("data-stat", "")
		if col == "" || c.drop.has(col) {
			return true
		}
		seen = true
		txt := Text(td)
		if txt != "" && !c.markers.has(txt) {
			data = true
			return false
		}
		return true
	})
	return !seen || !data
}

func (c *compiled) record(cells *goquery.Selection) *models.Row {
	rec := models.NewRow()
	cells.Each(func(_ int, td *goquery.Selection) {
		col := td.AttrOr("data-stat", "")
		if col == "" || c.drop.has(col) {
			return
		}
		key := c.key(col)
		rec.Set(key, coerce.Coerce(Text(td), c.policy(col)))

		if field, ok := c.links[col]; ok {
			rec.Set(field+"_href", Href(td))
		} else if c.spec.AutoLinks {
			if href := Href(td); href != nil {
				rec.Set(key+"_href", href)
			}
		}
		if c.titles.has(col) {
			if title, ok := td.Find("a").First().Attr("title"); ok {
				rec.Set(key+"_title", title)
			}
		}
		if col == c.spec.IDColumn {
			rec.Set(c.idField, ID(td, c.idAttr))
		}
	})
	return rec
}
