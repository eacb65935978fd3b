package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

// parseLeaders reads /leaders/{stat}_{scope}.htm. The table is
// "<stat>_leaders", or the first stats table when the id differs.
func parseLeaders(doc *goquery.Document, params Params) (*models.Document, error) {
	stat := strings.TrimSpace(params["stat"])
	table := extract.Find(doc, stat+"_leaders")
	if stat == "" || table.Length() == 0 {
		table = doc.Find("table.stats_table").First()
	}
	return models.NewRow().
		Set("stat", params.Str("stat")).
		Set("scope", params.Str("scope")).
		Set("title", coerce.Str(heading(doc.Selection))).
		Set("entries", leaderEntries(table, stat)), nil
}

func leaderEntries(table *goquery.Selection, stat string) []*models.Row {
	spec := extract.TableSpec{
		Int:      []string{"rank"},
		IDColumn: "player",
		Links:    map[string]string{"player": "player", "year": "year", "team": "team"},
	}
	if stat != "" {
		spec.Renames = map[string]string{stat: "stat_value"}
	}
	return extract.ExtractTableFunc(table, spec, func(tr *goquery.Selection, rec *models.Row) bool {
		cell := cellByStat(tr, "player")
		if cell.Length() == 0 {
			return true
		}
		name := extract.LinkText(cell)
		if name != "" {
			rec.Set("player", name)
		}
		rec.Set("is_active", cell.Find("strong").Length() > 0)
		rec.Set("is_hof", strings.Contains(strings.TrimPrefix(extract.Text(cell), name), "+"))
		return true
	})
}

var fantasyPlayers = extract.TableSpec{
	ID: "fantasy",
	Int: []string{
		"ranker", "age", "g", "gs", "pass_cmp", "pass_att", "pass_yds", "pass_td",
		"pass_int", "rush_att", "rush_yds", "rush_td", "targets", "rec", "rec_yds",
		"rec_td", "fumbles", "fumbles_lost", "all_td", "two_pt_md", "two_pt_pass",
		"vbd", "fantasy_rank_pos", "fantasy_rank_overall",
	},
	Numeric: []string{
		"rush_yds_per_att", "rec_yds_per_rec", "fantasy_points",
		"fantasy_points_ppr", "draftkings_points", "fanduel_points",
	},
	IDColumn: "player",
	Renames:  map[string]string{"ranker": "rank"},
	Links:    map[string]string{"player": "player", "team": "team"},
}

// parseFantasy reads /years/{year}/fantasy.htm.
func parseFantasy(doc *goquery.Document, params Params) (*models.Document, error) {
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("players", extract.Extract(doc, fantasyPlayers)), nil
}
