package pages

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/gridiron/cleaner"
	"github.com/use-agent/gridiron/models"
)

// hidden wraps markup in an HTML comment the way the site hides all but
// its first table.
func hidden(markup string) string {
	return `<div class="placeholder"></div><!--` + "\n" + markup + "\n" + `-->`
}

func page(body string) string {
	return `<html><head><title>t</title></head><body><div id="content">` + body + `</div></body></html>`
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var pe *models.ParseError
	require.True(t, errors.As(err, &pe), "expected *models.ParseError, got %v", err)
	return pe.Code
}

func proBowlTable(n int) string {
	var b strings.Builder
	b.WriteString(`<table id="pro_bowl"><thead><tr><th data-stat="pos">Pos</th><th data-stat="player">Player</th><th data-stat="team">Tm</th><th data-stat="conference_id">Conf</th><th data-stat="pro_bowls">PB</th></tr></thead><tbody>`)
	b.WriteString(`<tr><th data-stat="pos">QB</th><td data-stat="player" data-append-csv="JackLa00"><strong><a href="/players/J/JackLa00.htm">Lamar Jackson</a></strong>%</td><td data-stat="team"><a href="/teams/rav/2024.htm">BAL</a></td><td data-stat="conference_id">AFC</td><td data-stat="pro_bowls">3</td></tr>`)
	for i := 1; i < n; i++ {
		if i%20 == 0 {
			b.WriteString(`<tr class="thead"><th data-stat="pos">Pos</th><td data-stat="player">Player</td><td data-stat="team">Tm</td><td data-stat="conference_id">Conf</td><td data-stat="pro_bowls">PB</td></tr>`)
		}
		fmt.Fprintf(&b, `<tr><th data-stat="pos">WR</th><td data-stat="player" data-append-csv="Play%02d00"><a href="/players/P/Play%02d00.htm">Player %d</a>+</td><td data-stat="team"><a href="/teams/nor/2024.htm">NOR</a></td><td data-stat="conference_id">NFC</td><td data-stat="pro_bowls">1</td></tr>`, i, i, i)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func proBowlPage(n int) string {
	return page(`<h1>2024 Pro Bowl Rosters</h1>` + proBowlTable(n))
}

func TestParse_ProBowl(t *testing.T) {
	doc, err := Parse("probowl", proBowlPage(115), Params{"year": "2024"})
	require.NoError(t, err)

	assert.Equal(t, 2024, doc.Value("year"))
	players := doc.Rows("players")
	require.Len(t, players, 115)

	lamar := players[0]
	assert.Equal(t, "Lamar Jackson", lamar.Value("player"))
	assert.Equal(t, "JackLa00", lamar.Value("player_id"))
	assert.Equal(t, "/players/J/JackLa00.htm", lamar.Value("player_href"))
	assert.Equal(t, "AFC", lamar.Value("conference"))
	assert.Equal(t, 3, lamar.Value("pro_bowls"))
	assert.Equal(t, true, lamar.Value("is_starter"))
	assert.Equal(t, true, lamar.Value("did_not_play"))
	assert.Equal(t, false, lamar.Value("is_replacement"))

	last := players[114]
	assert.Equal(t, "Player 114", last.Value("player"))
	assert.Equal(t, false, last.Value("is_starter"))
	assert.Equal(t, true, last.Value("is_replacement"))
}

func TestParse_HiddenTableIsUnwrapped(t *testing.T) {
	doc, err := Parse("probowl", page(hidden(proBowlTable(5))), Params{"year": "2024"})
	require.NoError(t, err)
	assert.Len(t, doc.Rows("players"), 5)
}

func TestParse_AwardAndHOF(t *testing.T) {
	var awards strings.Builder
	awards.WriteString(`<table id="awards"><tbody>`)
	for i := 0; i < 70; i++ {
		year := 2024 - i
		fmt.Fprintf(&awards, `<tr><th data-stat="year_id"><a href="/years/%d/">%d</a></th><td data-stat="league_id">NFL</td><td data-stat="player" data-append-csv="Mvp%d"><a href="/players/M/Mvp%d.htm">Winner %d</a></td><td data-stat="team"><a href="/teams/kan/%d.htm">KAN</a></td></tr>`,
			year, year, year, year, year, year)
	}
	awards.WriteString(`</tbody></table>`)
	doc, err := Parse("award", page(awards.String()), Params{"award": "ap-nfl-mvp-award"})
	require.NoError(t, err)
	winners := doc.Rows("winners")
	require.Len(t, winners, 70)
	assert.Equal(t, "ap-nfl-mvp-award", doc.Value("award"))
	assert.Equal(t, []string{"year", "year_href", "league", "player", "player_href", "player_id", "team", "team_href"}, winners[0].Keys())
	assert.Equal(t, 2024, winners[0].Value("year"))
	assert.Equal(t, 1955, winners[69].Value("year"))

	var hof strings.Builder
	hof.WriteString(`<table id="hof_players"><tbody>`)
	for i := 1; i <= 332; i++ {
		fmt.Fprintf(&hof, `<tr><th data-stat="ranker">%d</th><td data-stat="player" data-append-csv="Hof%d"><a href="/players/H/Hof%d.htm">Hall %d</a></td><td data-stat="year_induction"><a href="/hof/%d.htm">%d</a></td><td data-stat="sacks">%d.5</td></tr>`,
			i, i, i, i, 1963+i%60, 1963+i%60, i%20)
	}
	hof.WriteString(`</tbody></table>`)
	doc, err = Parse("hof", page(hidden(hof.String())), nil)
	require.NoError(t, err)
	players := doc.Rows("players")
	require.Len(t, players, 332)
	assert.Equal(t, 1, players[0].Value("rank"))
	assert.Equal(t, 1964, players[0].Value("year_induction"))
	assert.Equal(t, 1.5, players[0].Value("sacks"))
	assert.Equal(t, "Hof332", players[331].Value("player_id"))
}

func TestParse_Draft(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<table id="drafts"><tbody>`)
	for i := 1; i <= 220; i++ {
		if i%32 == 1 && i > 1 {
			b.WriteString(`<tr class="thead"><th data-stat="draft_round">Rnd</th><td data-stat="draft_pick">Pick</td></tr>`)
		}
		fmt.Fprintf(&b, `<tr><th data-stat="draft_round">%d</th><td data-stat="draft_pick">%d</td><td data-stat="team"><a href="/teams/chi/2024_draft.htm">CHI</a></td><td data-stat="player" data-append-csv="Pick%d"><a href="/players/P/Pick%d.htm">Pick %d</a></td><td data-stat="college_id"><a href="/schools/usc/">USC</a></td><td data-stat="college_link"><a href="https://www.sports-reference.com/cfb/players/x.html">College Stats</a></td></tr>`,
			(i-1)/32+1, i, i, i, i)
	}
	b.WriteString(`</tbody></table>`)
	doc, err := Parse("draft", page(b.String()), Params{"year": "2024"})
	require.NoError(t, err)

	picks := doc.Rows("picks")
	require.Len(t, picks, 220)
	first := picks[0]
	assert.Equal(t, 1, first.Value("draft_round"))
	assert.Equal(t, 1, first.Value("draft_pick"))
	assert.Equal(t, "USC", first.Value("college"))
	assert.Equal(t, "/schools/usc/", first.Value("college_href"))
	assert.Equal(t, "College Stats", first.Value("college_stats"))
	assert.Equal(t, 7, picks[219].Value("draft_round"))
	assert.Equal(t, 220, picks[219].Value("draft_pick"))
}

func TestParse_Game_TeamTotalRowHasNilHref(t *testing.T) {
	table := `<table id="player_offense"><tbody>
<tr><th data-stat="player" data-append-csv="JackLa00"><a href="/players/J/JackLa00.htm">Lamar Jackson</a></th><td data-stat="pass_yds">290</td></tr>
<tr><th data-stat="player">Team Total</th><td data-stat="pass_yds">300</td></tr>
</tbody></table>`
	doc, err := Parse("game", page(hidden(table)), Params{"game_id": "202409050kan"})
	require.NoError(t, err)

	rows := doc.Rows("player_offense")
	require.Len(t, rows, 2)
	assert.Equal(t, "/players/J/JackLa00.htm", rows[0].Value("player_href"))
	assert.Equal(t, "JackLa00", rows[0].Value("player_id"))

	total := rows[1]
	assert.Equal(t, []string{"player", "player_href", "player_id", "pass_yds"}, total.Keys())
	assert.Nil(t, total.Value("player_href"))
	assert.Nil(t, total.Value("player_id"))
	assert.Equal(t, 300, total.Value("pass_yds"))
}

func TestParse_Combine_SplitsDraftInfo(t *testing.T) {
	markup := page(`<table id="combine"><tbody>
<tr><th data-stat="player" data-append-csv="WillCa00"><a href="/players/W/WillCa00.htm">Caleb Williams</a></th><td data-stat="pos">QB</td><td data-stat="school_name"><a href="/schools/usc/">USC</a></td><td data-stat="forty_yd"></td><td data-stat="draft_info"><a href="/teams/chi/2024_draft.htm">Chicago Bears</a> / 1st / 1st pick / <a href="/years/2024/draft.htm">2024</a></td></tr>
<tr><th data-stat="player">Undrafted Guy</th><td data-stat="pos">WR</td><td data-stat="school_name">Nowhere</td><td data-stat="forty_yd">4.41</td><td data-stat="draft_info"></td></tr>
</tbody></table>`)
	doc, err := Parse("combine", markup, Params{"year": "2024"})
	require.NoError(t, err)

	entries := doc.Rows("entries")
	require.Len(t, entries, 2)
	caleb := entries[0]
	assert.Equal(t, "Chicago Bears", caleb.Value("drafted_team"))
	assert.Equal(t, "1st", caleb.Value("drafted_round"))
	assert.Equal(t, "1st pick", caleb.Value("drafted_pick"))
	assert.Equal(t, 2024, caleb.Value("drafted_year"))
	assert.Equal(t, "USC", caleb.Value("school"))
	assert.Nil(t, caleb.Value("forty_yd"))

	undrafted := entries[1]
	assert.False(t, undrafted.Has("drafted_team"))
	assert.Equal(t, 4.41, undrafted.Value("forty_yd"))
}

func TestParse_Schedule_PageShape(t *testing.T) {
	_, err := Parse("schedule", page(`<table id="not_games"><tbody></tbody></table>`), Params{"year": "2024"})
	require.Error(t, err)
	assert.Equal(t, models.ErrCodePageShape, codeOf(t, err))
}

func TestParse_Schedule(t *testing.T) {
	markup := page(`<table id="games"><tbody>
<tr><th data-stat="week_num">1</th><td data-stat="winner"><a href="/teams/kan/2024.htm">Kansas City Chiefs</a></td><td data-stat="loser"><a href="/teams/rav/2024.htm">Baltimore Ravens</a></td><td data-stat="boxscore_word"><a href="/boxscores/202409050kan.htm">boxscore</a></td><td data-stat="pts_win">27</td><td data-stat="pts_lose">20</td></tr>
<tr class="thead"><th data-stat="week_num">Week</th></tr>
<tr><th data-stat="week_num"></th><td data-stat="winner">Playoffs</td><td data-stat="loser"></td><td data-stat="boxscore_word"></td><td data-stat="pts_win"></td><td data-stat="pts_lose"></td></tr>
</tbody></table>`)
	doc, err := Parse("schedule", markup, Params{"year": "2024"})
	require.NoError(t, err)
	games := doc.Rows("games")
	require.Len(t, games, 1)
	assert.Equal(t, 27, games[0].Value("pts_win"))
	assert.Equal(t, "/boxscores/202409050kan.htm", games[0].Value("boxscore_word_href"))
}

func TestParse_EmptyHTML(t *testing.T) {
	_, err := Parse("schedule", "   ", nil)
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeInvalidInput, codeOf(t, err))
}

func TestTeamSeasonGames_KeepsByeWeek(t *testing.T) {
	doc, err := cleaner.Load(page(`<table id="games"><tbody>
<tr><th data-stat="week_num">5</th><td data-stat="game_date">October 6</td><td data-stat="opp"><a href="/teams/cin/2024.htm">Cincinnati Bengals</a></td><td data-stat="pts_off">41</td><td data-stat="pts_def">38</td></tr>
<tr><th data-stat="week_num">14</th><td data-stat="game_date"></td><td data-stat="opp">Bye Week</td><td data-stat="pts_off"></td><td data-stat="pts_def"></td></tr>
</tbody></table>`))
	require.NoError(t, err)

	games := teamSeasonGames(doc.Find("table#games"))
	require.Len(t, games, 2)
	assert.Equal(t, false, games[0].Value("is_bye_week"))
	assert.Equal(t, 41, games[0].Value("pts_off"))

	bye := games[1]
	assert.Equal(t, true, bye.Value("is_bye_week"))
	assert.True(t, bye.Has("pts_off"))
	assert.Nil(t, bye.Value("pts_off"))
	assert.Nil(t, bye.Value("opp_href"))
}

func TestPlayerStatistics_GroupsAndSplitsPostseason(t *testing.T) {
	const head = `<thead>
<tr class="over_header"><th class="over_header" data-stat="header_empty" colspan="2"></th><th class="over_header" data-stat="header_rushing" colspan="2">Rushing</th></tr>
<tr><th data-stat="year_id">Year</th><th data-stat="team">Tm</th><th data-stat="rush_att">Att</th><th data-stat="rush_yds">Yds</th></tr>
</thead>`
	doc, err := cleaner.Load(page(
		`<table class="stats_table" id="rushing_and_receiving">` + head + `<tbody>
<tr><th data-stat="year_id">2024</th><td data-stat="team"><a href="/teams/rav/2024.htm">BAL</a></td><td data-stat="rush_att">139</td><td data-stat="rush_yds">915</td></tr>
</tbody></table>` + hidden(`<table class="stats_table" id="rushing_and_receiving_post">`+head+`<tbody>
<tr><th data-stat="year_id">2024</th><td data-stat="team">BAL</td><td data-stat="rush_att">14</td><td data-stat="rush_yds">81</td></tr>
</tbody></table>`) + `<table class="stats_table" id="sim_scores"><tbody><tr><td data-stat="player">x</td></tr></tbody></table>`))
	require.NoError(t, err)

	stats := playerStatistics(doc)
	regular := stats.Sub("regular_season")
	post := stats.Sub("post_season")
	require.NotNil(t, regular)
	require.NotNil(t, post)
	assert.Equal(t, []string{"rushing_and_receiving"}, regular.Keys())
	assert.Equal(t, []string{"rushing_and_receiving"}, post.Keys())

	rows := regular.Rows("rushing_and_receiving")
	require.Len(t, rows, 1)
	general := rows[0].Sub("general")
	rushing := rows[0].Sub("header_rushing")
	require.NotNil(t, general)
	require.NotNil(t, rushing)
	assert.Equal(t, []string{"year_id", "team", "team_href"}, general.Keys())
	assert.Equal(t, 915, rushing.Value("rush_yds"))

	postRows := post.Rows("rushing_and_receiving")
	require.Len(t, postRows, 1)
	assert.Equal(t, 81, postRows[0].Sub("header_rushing").Value("rush_yds"))
}

func TestParse_SuperBowlStandings(t *testing.T) {
	markup := page(`<table id="standings"><tbody>
<tr><th data-stat="ranker">1</th><td data-stat="team"><a href="/teams/pit/">Pittsburgh Steelers</a></td><td data-stat="g">8</td><td data-stat="wins">6</td><td data-stat="losses">2</td><td data-stat="win_loss_perc">.750</td><td data-stat="sb_qbs"><a href="/players/B/BradTe00.htm">Terry Bradshaw</a> (4-0), <a href="/players/R/RoetBe00.htm">Ben Roethlisberger</a> (2-1)</td></tr>
</tbody></table>`)
	doc, err := Parse("superbowl_standings", markup, nil)
	require.NoError(t, err)

	teams := doc.Rows("teams")
	require.Len(t, teams, 1)
	steelers := teams[0]
	assert.Equal(t, 1, steelers.Value("rank"))
	assert.Equal(t, 8, steelers.Value("games"))
	assert.Equal(t, ".750", steelers.Value("win_loss_pct"))
	qbs := steelers.Rows("qbs")
	require.Len(t, qbs, 2)
	assert.Equal(t, "Terry Bradshaw", qbs[0].Value("player"))
	assert.Equal(t, "4-0", qbs[0].Value("record"))
	assert.Equal(t, "2-1", qbs[1].Value("record"))
}

func TestParse_SuperBowlHistory(t *testing.T) {
	markup := page(`<table id="super_bowls"><tbody>
<tr><th data-stat="game_date">Feb 11, 2024</th><td data-stat="superbowl"><a href="/boxscores/202402110kan.htm">LVIII</a> (58)</td><td data-stat="sb_winner"><a href="/teams/kan/2023.htm">Kansas City Chiefs</a></td><td data-stat="sb_winner_points">25</td><td data-stat="sb_loser"><a href="/teams/sfo/2023.htm">San Francisco 49ers</a></td><td data-stat="sb_loser_points">22</td><td data-stat="sb_mvp"><a href="/players/M/MahoPa00.htm">Patrick Mahomes</a>+</td></tr>
</tbody></table>`)
	doc, err := Parse("superbowl_history", markup, nil)
	require.NoError(t, err)

	games := doc.Rows("games")
	require.Len(t, games, 1)
	g := games[0]
	assert.Equal(t, "LVIII", g.Value("superbowl"))
	assert.Equal(t, 58, g.Value("superbowl_number"))
	assert.Equal(t, "/boxscores/202402110kan.htm", g.Value("boxscore_href"))
	assert.Equal(t, "Kansas City Chiefs", g.Value("winner"))
	assert.Equal(t, 25, g.Value("winner_points"))
	assert.Equal(t, "Patrick Mahomes", g.Value("mvp"))
}

func TestParse_SeasonStandingsCarryDivision(t *testing.T) {
	markup := page(`<table id="AFC"><tbody>
<tr class="thead onecell"><td data-stat="onecell" colspan="3">AFC East</td></tr>
<tr><th data-stat="team"><a href="/teams/buf/2024.htm">Buffalo Bills</a></th><td data-stat="wins">13</td><td data-stat="losses">4</td></tr>
<tr class="thead onecell"><td data-stat="onecell" colspan="3">AFC North</td></tr>
<tr><th data-stat="team"><a href="/teams/rav/2024.htm">Baltimore Ravens</a></th><td data-stat="wins">12</td><td data-stat="losses">5</td></tr>
</tbody></table>`)
	doc, err := Parse("season", markup, Params{"year": "2024"})
	require.NoError(t, err)

	afc := doc.Rows("afc_standings")
	require.Len(t, afc, 2)
	assert.Equal(t, "division", afc[0].Keys()[0])
	assert.Equal(t, "AFC East", afc[0].Value("division"))
	assert.Equal(t, 13, afc[0].Value("wins"))
	assert.Equal(t, "AFC North", afc[1].Value("division"))
	assert.Empty(t, doc.Rows("nfc_standings"))
}

func TestParse_WeekGames(t *testing.T) {
	markup := page(`<div class="game_summaries">
<div class="game_summary"><table class="teams"><tbody>
<tr class="date"><td colspan="3">Sep 5, 2024</td></tr>
<tr class="loser"><td><a href="/teams/rav/2024.htm">Baltimore Ravens</a></td><td class="right">20</td><td class="right gamelink"><a href="/boxscores/202409050kan.htm">Final</a></td></tr>
<tr class="winner"><td><a href="/teams/kan/2024.htm">Kansas City Chiefs</a></td><td class="right">27</td><td class="right"></td></tr>
</tbody></table>
<table class="stats"><tbody>
<tr><td><strong>PassYds</strong></td><td><a href="/players/M/MahoPa00.htm">Mahomes</a>-KAN</td><td class="right">291</td></tr>
</tbody></table></div>
</div>`)
	doc, err := Parse("week", markup, Params{"year": "2024", "week": "1"})
	require.NoError(t, err)

	games := doc.Rows("games")
	require.Len(t, games, 1)
	g := games[0]
	assert.Equal(t, "Sep 5, 2024", g.Value("game_date"))
	assert.Equal(t, "Baltimore Ravens", g.Value("away_team"))
	assert.Equal(t, 20, g.Value("away_score"))
	assert.Equal(t, 27, g.Value("home_score"))
	assert.Equal(t, "home", g.Value("winner"))
	assert.Equal(t, "/boxscores/202409050kan.htm", g.Value("boxscore_href"))
	assert.Equal(t, "Mahomes", g.Value("top_passer"))
	assert.Equal(t, 291, g.Value("top_passer_yds"))
}
