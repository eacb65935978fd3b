package extract

import (
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/models"
)

func mustDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

const gamesTable = `<table id="games">
<thead><tr><th data-stat="week_num">Week</th><th data-stat="winner">Winner</th><th data-stat="pts_win">PtsW</th><th data-stat="boxscore_word"></th></tr></thead>
<tbody>
<tr><th data-stat="week_num">1</th><td data-stat="winner"><a href="/teams/kan/2024.htm">Kansas City Chiefs</a></td><td data-stat="pts_win">27</td><td data-stat="boxscore_word"><a href="/boxscores/202409050kan.htm">boxscore</a></td></tr>
<tr class="thead"><th data-stat="week_num">Week</th><td data-stat="winner">Winner</td><td data-stat="pts_win">PtsW</td><td data-stat="boxscore_word"></td></tr>
<tr><th data-stat="week_num"></th><td data-stat="winner">Playoffs</td><td data-stat="pts_win"></td><td data-stat="boxscore_word"></td></tr>
<tr><td class="onecell" colspan="4">Wild Card</td></tr>
<tr><th data-stat="week_num">2</th><td data-stat="winner">TBD</td><td data-stat="pts_win">n/a</td><td data-stat="boxscore_word"></td></tr>
</tbody></table>`

var gamesSpec = TableSpec{
	ID:    "games",
	Int:   []string{"pts_win", "week_num"},
	Links: map[string]string{"winner": "winner", "boxscore_word": "boxscore"},
}

func TestExtract_SkipsHeaderAndDividerRows(t *testing.T) {
	rows := Extract(mustDoc(t, gamesTable), gamesSpec)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, []string{"week_num", "winner", "winner_href", "pts_win", "boxscore_word", "boxscore_href"}, first.Keys())
	assert.Equal(t, 1, first.Value("week_num"))
	assert.Equal(t, "Kansas City Chiefs", first.Value("winner"))
	assert.Equal(t, "/teams/kan/2024.htm", first.Value("winner_href"))
	assert.Equal(t, 27, first.Value("pts_win"))
	assert.Equal(t, "/boxscores/202409050kan.htm", first.Value("boxscore_href"))
}

func TestExtract_LinkSiblingIsNilWithoutAnchor(t *testing.T) {
	rows := Extract(mustDoc(t, gamesTable), gamesSpec)
	require.Len(t, rows, 2)

	second := rows[1]
	href, ok := second.Get("winner_href")
	assert.True(t, ok)
	assert.Nil(t, href)
	assert.True(t, second.Has("boxscore_href"))
	assert.Nil(t, second.Value("boxscore_href"))
	// unparseable numbers degrade to nil, the row is still emitted
	assert.Nil(t, second.Value("pts_win"))
	assert.Nil(t, second.Value("boxscore_word"))
}

func TestExtract_MissingTable(t *testing.T) {
	rows := Extract(mustDoc(t, `<p>nothing here</p>`), gamesSpec)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExtract_IdentityRenameDrop(t *testing.T) {
	page := `<table id="awards"><tbody>
<tr><th data-stat="ranker">1</th><td data-stat="year_id"><a href="/years/2024/">2024</a></td><td data-stat="player" data-append-csv="JackLa00"><a href="/players/J/JackLa00.htm">Lamar Jackson</a></td><td data-stat="pct">71.3%</td><td data-stat="ypa">8.8</td><td data-stat="note">6-10-0</td></tr>
</tbody></table>`
	spec := TableSpec{
		ID:       "awards",
		Int:      []string{"year_id"},
		Percent:  []string{"pct"},
		Float:    []string{"ypa"},
		Numeric:  []string{"note"},
		Links:    map[string]string{"year_id": "year", "player": "player"},
		IDColumn: "player",
		Renames:  map[string]string{"year_id": "year"},
		Drop:     []string{"ranker"},
	}
	rows := Extract(mustDoc(t, page), spec)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, []string{"year", "year_href", "player", "player_href", "player_id", "pct", "ypa", "note"}, r.Keys())
	assert.Equal(t, 2024, r.Value("year"))
	assert.Equal(t, "JackLa00", r.Value("player_id"))
	assert.Equal(t, 71.3, r.Value("pct"))
	assert.Equal(t, 8.8, r.Value("ypa"))
	assert.Equal(t, "6-10-0", r.Value("note"))
}

func TestExtract_IDMissingIsNil(t *testing.T) {
	page := `<table id="t"><tbody><tr><td data-stat="player">Nobody</td></tr></tbody></table>`
	rows := Extract(mustDoc(t, page), TableSpec{ID: "t", IDColumn: "player"})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Has("player_id"))
	assert.Nil(t, rows[0].Value("player_id"))
}

func TestExtract_IdentityColumnIsLinkColumn(t *testing.T) {
	page := `<table id="t"><tbody>
<tr><td data-stat="player" data-append-csv="MahoPa00"><a href="/players/M/MahoPa00.htm">Patrick Mahomes</a></td><td data-stat="g">17</td></tr>
<tr><td data-stat="player">Team Total</td><td data-stat="g">17</td></tr>
</tbody></table>`
	doc := mustDoc(t, page)

	tests := []struct {
		name string
		spec TableSpec
	}{
		{"id column only", TableSpec{ID: "t", IDColumn: "player"}},
		{"with auto links", TableSpec{ID: "t", IDColumn: "player", AutoLinks: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Extract(doc, tt.spec)
			require.Len(t, rows, 2)
			assert.Equal(t, "/players/M/MahoPa00.htm", rows[0].Value("player_href"))
			assert.Equal(t, "MahoPa00", rows[0].Value("player_id"))

			require.True(t, rows[1].Has("player_href"))
			assert.Nil(t, rows[1].Value("player_href"))
			assert.Nil(t, rows[1].Value("player_id"))
		})
	}

	renamed := Extract(doc, TableSpec{ID: "t", IDColumn: "player", Renames: map[string]string{"player": "name"}})
	require.Len(t, renamed, 2)
	assert.Equal(t, []string{"name", "name_href", "name_id", "g"}, renamed[1].Keys())

	linked := Extract(doc, TableSpec{ID: "t", IDColumn: "player", Links: map[string]string{"player": "athlete"}})
	require.Len(t, linked, 2)
	assert.False(t, linked[1].Has("player_href"))
	assert.True(t, linked[1].Has("athlete_href"))
}

func TestExtract_AutoLinksAndFooter(t *testing.T) {
	page := `<table id="results"><tbody>
<tr><td data-stat="team"><a href="/teams/rav/2024.htm">BAL</a></td><td data-stat="g">17</td></tr>
</tbody><tfoot>
<tr><td data-stat="team">Career</td><td data-stat="g">98</td></tr>
</tfoot></table>`
	doc := mustDoc(t, page)

	body := Extract(doc, TableSpec{ID: "results", Default: coerce.Numeric, AutoLinks: true})
	require.Len(t, body, 1)
	assert.Equal(t, "/teams/rav/2024.htm", body[0].Value("team_href"))
	assert.Equal(t, 17, body[0].Value("g"))

	foot := Extract(doc, TableSpec{ID: "results", Container: Foot, Default: coerce.Numeric, AutoLinks: true})
	require.Len(t, foot, 1)
	assert.Equal(t, "Career", foot[0].Value("team"))
	assert.False(t, foot[0].Has("team_href"))
}

func TestExtract_KeepEmpty(t *testing.T) {
	page := `<table id="t"><tbody><tr><td data-stat="a"></td><td data-stat="b"></td></tr></tbody></table>`
	assert.Empty(t, Extract(mustDoc(t, page), TableSpec{ID: "t"}))
	assert.Len(t, Extract(mustDoc(t, page), TableSpec{ID: "t", KeepEmpty: true}), 1)
}

func TestExtract_RowCountFidelity(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<table id="big"><tbody>`)
	for i := 0; i < 70; i++ {
		if i%10 == 0 {
			b.WriteString(`<tr class="thead"><th data-stat="year_id">Year</th></tr>`)
		}
		b.WriteString(`<tr><th data-stat="year_id">` + strconv.Itoa(1955+i) + `</th></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	assert.Len(t, Extract(mustDoc(t, b.String()), TableSpec{ID: "big"}), 70)
}

const overHeaderTable = `<table id="passing"><thead>
<tr class="over_header"><th class="over_header" data-stat="header_empty" colspan="2"></th><th class="over_header" data-stat="header_passing" colspan="2">Passing</th><th class="over_header" data-stat="" colspan="1"></th></tr>
<tr><th data-stat="year_id">Year</th><th data-stat="team">Tm</th><th data-stat="pass_cmp">Cmp</th><th data-stat="pass_yds">Yds</th><th data-stat="awards">Awards</th></tr>
</thead><tbody>
<tr><th data-stat="year_id">2024</th><td data-stat="team"><a href="/teams/rav/2024.htm">BAL</a></td><td data-stat="pass_cmp">316</td><td data-stat="pass_yds">4172</td><td data-stat="awards">PB</td></tr>
</tbody></table>`

func TestBuildIndexMap(t *testing.T) {
	doc := mustDoc(t, overHeaderTable)
	m, ok := BuildIndexMap(Find(doc, "passing"))
	require.True(t, ok)
	assert.Equal(t, []string{"year_id", "team", "pass_cmp", "pass_yds", "awards"}, m.Columns)
	assert.Equal(t, []string{"general", "general", "header_passing", "header_passing", ""}, m.Categories)
	assert.Len(t, m.Categories, len(m.Columns))
}

func TestBuildIndexMap_NoCategoryRow(t *testing.T) {
	_, ok := BuildIndexMap(Find(mustDoc(t, gamesTable), "games"))
	assert.False(t, ok)
}

func TestGroup_PartitionIsTotal(t *testing.T) {
	doc := mustDoc(t, overHeaderTable)
	table := Find(doc, "passing")
	m, ok := BuildIndexMap(table)
	require.True(t, ok)

	rows := ExtractTable(table, TableSpec{Default: coerce.Numeric, Links: map[string]string{"team": "team"}})
	require.Len(t, rows, 1)
	flat := rows[0]
	grouped := m.Group(flat)

	assert.Equal(t, []string{"general", "header_passing"}, grouped.Keys())
	general := grouped.Sub("general")
	assert.Equal(t, []string{"year_id", "team", "team_href", "awards"}, general.Keys())
	assert.Equal(t, "PB", general.Value("awards"))
	assert.Equal(t, 4172, grouped.Sub("header_passing").Value("pass_yds"))

	seen := 0
	grouped.Each(func(_ string, v any) {
		sub := v.(*models.Row)
		sub.Each(func(k string, val any) {
			seen++
			assert.Equal(t, flat.Value(k), val)
		})
	})
	assert.Equal(t, flat.Len(), seen)
}

func TestNewOverHeaderMap_CorrectSpans(t *testing.T) {
	m := NewOverHeaderMap([]HeaderSpan{
		{Label: "rushing", Span: 2},
		{Label: "receiving", Span: 3},
		{Empty: true, Span: 1},
	}, []string{"a", "b", "c", "d", "e", "f"})
	assert.Equal(t, []string{"rushing", "rushing", "receiving", "receiving", "receiving", "general"}, m.Categories)
	assert.Equal(t, "rushing", m.Category(42))
}

func TestKeyValue(t *testing.T) {
	page := `<table id="game_info">
<tr><th data-stat="onecell" colspan="2">Game Info</th></tr>
<tr><th data-stat="info">Won Toss</th><td data-stat="stat">Ravens</td></tr>
<tr><th data-stat="info">Referee</th><td data-stat="stat"><a href="/officials/HochEd0r.htm">Ed Hochuli</a></td></tr>
<tr><th data-stat="info">Vegas Line</th><td data-stat="stat"></td></tr>
</table>`
	kv := KeyValue(Find(mustDoc(t, page), "game_info"))
	assert.Equal(t, []string{"won_toss", "referee", "referee_href", "vegas_line"}, kv.Keys())
	assert.Equal(t, "Ravens", kv.Value("won_toss"))
	assert.Equal(t, "/officials/HochEd0r.htm", kv.Value("referee_href"))
	assert.Nil(t, kv.Value("vegas_line"))
}

func TestLabeled(t *testing.T) {
	page := `<table id="team_stats"><tbody>
<tr><th data-stat="player">Team Stats</th><td data-stat="points">518</td><td data-stat="yds_per_play">6.7</td></tr>
<tr><th data-stat="player">Opp. Stats</th><td data-stat="points">361</td><td data-stat="yds_per_play">5.3</td></tr>
</tbody></table>`
	out := Labeled(Find(mustDoc(t, page), "team_stats"), TableSpec{Default: coerce.Numeric}, "player")
	assert.Equal(t, []string{"Team Stats", "Opp. Stats"}, out.Keys())
	assert.Equal(t, 518, out.Sub("Team Stats").Value("points"))
	assert.False(t, out.Sub("Team Stats").Has("player"))
	assert.Equal(t, 5.3, out.Sub("Opp. Stats").Value("yds_per_play"))
}

func TestLinkHelpers(t *testing.T) {
	doc := mustDoc(t, `<table><tr><td id="c" data-append-csv=" X "><a>no href</a><a href="/b">b</a></td></tr></table>`)
	cell := doc.Find("td#c")
	assert.Nil(t, Href(cell))
	assert.Equal(t, "X", ID(cell, DefaultIDAttr))
	assert.Nil(t, ID(cell, "data-missing"))

	assert.Equal(t, "JackLa00", IDFromHref("/players/J/JackLa00.htm"))
	assert.Equal(t, "kan", IDFromHref("/teams/kan/"))
	assert.Equal(t, "", IDFromHref(""))
}

func TestSnakify(t *testing.T) {
	assert.Equal(t, "points_for", Snakify("Points For:"))
	assert.Equal(t, "expected_w_l", Snakify("Expected W-L:"))
	assert.Equal(t, "championships_won", Snakify(" Championships Won*: "))
	assert.Equal(t, "", Snakify(" : "))
}
