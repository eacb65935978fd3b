package cleaner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hiddenPage = `<html><body>
<div id="all_passing"><div class="placeholder"></div>
<!--
   <div class="table_container"><table id="passing" class="stats_table"><tbody><tr><td data-stat="pass_yds">4172</td></tr></tbody></table></div>
-->
</div>
<!-- just a note -->
<table id="games"><tbody><tr><td data-stat="week_num">1</td></tr></tbody></table>
</body></html>`

func TestUnwrap_RevealsCommentedTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(hiddenPage))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("table#passing").Length())

	n := Unwrap(doc)
	assert.Equal(t, 1, n)
	assert.Equal(t, "4172", doc.Find(`table#passing td[data-stat="pass_yds"]`).Text())
	assert.Equal(t, 1, doc.Find("div#all_passing > div.table_container").Length())
	assert.Equal(t, 1, doc.Find("table#games").Length())
}

func TestUnwrap_Idempotent(t *testing.T) {
	doc, err := Load(hiddenPage)
	require.NoError(t, err)
	first, err := doc.Html()
	require.NoError(t, err)

	assert.Equal(t, 0, Unwrap(doc))
	second, err := doc.Html()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnwrap_NoHiddenTablesIsNoop(t *testing.T) {
	page := `<html><head></head><body><!-- ad slot --><p>plain</p></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	before, _ := doc.Html()

	assert.Equal(t, 0, Unwrap(doc))
	after, _ := doc.Html()
	assert.Equal(t, before, after)
}

func TestUnwrap_MalformedTableIsBestEffort(t *testing.T) {
	page := `<div id="all_x"><!-- <table id="broken"><tr><td data-stat="a">1<td data-stat="b">2 --></div>`
	doc, err := Load(page)
	require.NoError(t, err)
	assert.Equal(t, "2", strings.TrimSpace(doc.Find(`table#broken td[data-stat="b"]`).Text()))
}

func TestListTables_MarksHidden(t *testing.T) {
	tables, err := ListTables(hiddenPage)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "passing", tables[0].ID)
	assert.True(t, tables[0].Hidden)
	assert.Equal(t, []string{"stats_table"}, tables[0].Classes)
	assert.Equal(t, 1, tables[0].Rows)

	assert.Equal(t, "games", tables[1].ID)
	assert.False(t, tables[1].Hidden)
}

func TestApplyCSSSelector_FallsBackToInput(t *testing.T) {
	out, err := ApplyCSSSelector(hiddenPage, "table#missing")
	require.NoError(t, err)
	assert.Equal(t, hiddenPage, out)

	out, err = ApplyCSSSelector(hiddenPage, "table#passing")
	require.NoError(t, err)
	assert.Contains(t, out, `data-stat="pass_yds"`)
}
