package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

// seasonTeamTables are the team stat tables of a season overview.
var seasonTeamTables = []string{
	"team_stats",
	"passing",
	"rushing",
	"returns",
	"kicking",
	"punting",
	"team_scoring",
	"team_conversions",
	"drives",
}

var (
	conferenceStandings = extract.TableSpec{
		Int:   []string{"wins", "losses", "points", "points_opp", "points_diff"},
		Links: map[string]string{"team": "team"},
	}
	playoffResults = extract.TableSpec{
		ID:    "playoff_results",
		Int:   []string{"pts_win", "pts_lose"},
		Links: map[string]string{"winner": "winner", "loser": "loser", "boxscore_word": "boxscore"},
	}
	playoffStandings = extract.TableSpec{
		Int:   []string{"wins", "losses", "ties"},
		Links: map[string]string{"team": "team"},
	}
)

// parseSeason reads /years/{year}/.
func parseSeason(doc *goquery.Document, params Params) (*models.Document, error) {
	out := models.NewRow().
		Set("year", params.Int("year")).
		Set("afc_standings", standings(extract.Find(doc, "AFC"))).
		Set("nfc_standings", standings(extract.Find(doc, "NFC"))).
		Set("playoff_results", extract.Extract(doc, playoffResults)).
		Set("afc_playoff_standings", extract.ExtractTable(extract.Find(doc, "afc_playoff_standings"), playoffStandings)).
		Set("nfc_playoff_standings", extract.ExtractTable(extract.Find(doc, "nfc_playoff_standings"), playoffStandings))
	for _, id := range seasonTeamTables {
		out.Set(id, extract.Extract(doc, extract.TableSpec{
			ID:      id,
			Default: coerce.Numeric,
			Links:   map[string]string{"team": "team"},
			Drop:    []string{"ranker"},
		}))
	}
	return out, nil
}

// standings reads a conference table where each "thead" row names the
// division of the team rows below it.
func standings(table *goquery.Selection) []*models.Row {
	out := make([]*models.Row, 0)
	if table.Length() == 0 {
		return out
	}
	var division any
	extract.Rows(table, extract.Body).Each(func(_ int, tr *goquery.Selection) {
		switch {
		case tr.HasClass("thead"):
			division = coerce.Str(extract.Text(tr.Find("td").First()))
			return
		case tr.HasClass("over_header"):
			return
		}
		rec := extract.ExtractRow(tr, conferenceStandings)
		if rec.Len() == 0 {
			return
		}
		if division != nil {
			rec = prepend("division", division, rec)
		}
		out = append(out, rec)
	})
	return out
}

// parseSeasonStats reads /years/{year}/{category}.htm. The first stats
// table with rows is the regular season; the first "_post" one is the
// postseason.
func parseSeasonStats(doc *goquery.Document, params Params) (*models.Document, error) {
	regular := make([]*models.Row, 0)
	post := make([]*models.Row, 0)
	doc.Find("table[id]").Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "")
		isPost := strings.HasSuffix(id, "_post")
		if (isPost && len(post) > 0) || (!isPost && len(regular) > 0) {
			return
		}
		rows := extract.ExtractTableFunc(table, nameDisplayTable(id), func(tr *goquery.Selection, rec *models.Row) bool {
			if tr.HasClass("partial_table") {
				rec.Set("is_partial", true)
			}
			return true
		})
		if len(rows) == 0 {
			return
		}
		if isPost {
			post = rows
		} else {
			regular = rows
		}
	})
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("category", params.Str("category")).
		Set("regular_season", regular).
		Set("postseason", post), nil
}

// weekLeaderTables maps the leader table ids of a week page to output keys.
var weekLeaderTables = []struct{ id, key string }{
	{"qb_stats", "top_passers"},
	{"rec_stats", "top_receivers"},
	{"rush_stats", "top_rushers"},
	{"def_stats", "top_defenders"},
}

var playersOfTheWeek = extract.TableSpec{
	ID:    "potw",
	Links: map[string]string{"offense": "offense", "defense": "defense", "st": "st"},
}

// parseWeek reads /years/{year}/week_{week}.htm.
func parseWeek(doc *goquery.Document, params Params) (*models.Document, error) {
	games := make([]*models.Row, 0)
	doc.Find("div.game_summaries").First().Find("div.game_summary").Each(func(_ int, block *goquery.Selection) {
		if g := weekGame(block); g != nil && g.Len() > 0 {
			games = append(games, g)
		}
	})
	out := models.NewRow().
		Set("year", params.Int("year")).
		Set("week", params.Int("week")).
		Set("games", games).
		Set("players_of_the_week", extract.Extract(doc, playersOfTheWeek))
	for _, t := range weekLeaderTables {
		out.Set(t.key, extract.Extract(doc, extract.TableSpec{
			ID:       t.id,
			Default:  coerce.Numeric,
			IDColumn: "player",
			Links: map[string]string{
				"player":    "player",
				"game_date": "boxscore",
				"team":      "team",
				"opp":       "opp",
			},
			Drop: []string{"ranker"},
		}))
	}
	return out, nil
}
