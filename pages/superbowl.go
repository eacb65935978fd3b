package pages

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
	"golang.org/x/net/html"
)

var (
	superBowlNumberRe = regexp.MustCompile(`\((\d+)\)`)
	qbRecordRe        = regexp.MustCompile(`\((\d+-\d+)\)`)
)

var superBowls = extract.TableSpec{
	ID:  "super_bowls",
	Int: []string{"sb_winner_points", "sb_loser_points"},
	Renames: map[string]string{
		"sb_winner":        "winner",
		"sb_winner_points": "winner_points",
		"sb_loser":         "loser",
		"sb_loser_points":  "loser_points",
		"sb_mvp":           "mvp",
	},
	Links: map[string]string{
		"superbowl": "boxscore",
		"sb_winner": "winner",
		"sb_loser":  "loser",
		"sb_mvp":    "mvp",
		"stadium":   "stadium",
	},
}

// parseSuperBowlHistory reads /super-bowl/. The game cell reads like
// "LVIII (58)": the link text is kept as the name and the number in
// parentheses as superbowl_number.
func parseSuperBowlHistory(doc *goquery.Document, _ Params) (*models.Document, error) {
	games := extract.ExtractTableFunc(extract.Find(doc, superBowls.ID), superBowls, func(tr *goquery.Selection, rec *models.Row) bool {
		cell := cellByStat(tr, "superbowl")
		if name := extract.LinkText(cell); name != "" {
			rec.Set("superbowl", name)
		}
		if m := superBowlNumberRe.FindStringSubmatch(extract.Text(cell)); m != nil {
			rec.Set("superbowl_number", coerce.Integer(m[1]))
		}
		if name := extract.LinkText(cellByStat(tr, "sb_mvp")); name != "" {
			rec.Set("mvp", name)
		}
		return true
	})
	return models.NewRow().Set("games", games), nil
}

// parseSuperBowlLeaders reads /super-bowl/leaders.htm: one leaderboard per
// captioned table, with rank, who and value cells.
func parseSuperBowlLeaders(doc *goquery.Document, _ Params) (*models.Document, error) {
	tables := make([]*models.Row, 0)
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		caption := table.Find("caption").First()
		if caption.Length() == 0 {
			return
		}
		tables = append(tables, models.NewRow().
			Set("category", extract.Text(caption)).
			Set("entries", leaderboard(table)))
	})
	return models.NewRow().Set("tables", tables), nil
}

func leaderboard(table *goquery.Selection) []*models.Row {
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}
	entries := make([]*models.Row, 0)
	rows.Each(func(_ int, tr *goquery.Selection) {
		entry := models.NewRow()
		tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
			switch {
			case td.HasClass("rank"):
				entry.Set("rank", coerce.Integer(strings.TrimRight(extract.Text(td), ".")))
			case td.HasClass("who"):
				if a := td.Find("a").First(); a.Length() > 0 {
					entry.Set("player", extract.Text(a))
					entry.Set("player_href", extract.Href(a))
				}
				if desc := td.Find("span.desc").First(); desc.Length() > 0 {
					entry.Set("description", extract.Text(desc))
				}
			case td.HasClass("value"):
				entry.Set("value", extract.Text(td))
			}
		})
		if entry.Len() > 0 {
			entries = append(entries, entry)
		}
	})
	return entries
}

var superBowlStandings = extract.TableSpec{
	ID:  "standings",
	Int: []string{"ranker", "g", "wins", "losses", "points", "points_opp"},
	Renames: map[string]string{
		"ranker":        "rank",
		"g":             "games",
		"win_loss_perc": "win_loss_pct",
		"sb_qbs":        "qbs",
	},
	Links: map[string]string{"team": "team"},
}

// parseSuperBowlStandings reads /super-bowl/standings.htm.
func parseSuperBowlStandings(doc *goquery.Document, _ Params) (*models.Document, error) {
	teams := extract.ExtractTableFunc(extract.Find(doc, superBowlStandings.ID), superBowlStandings, func(tr *goquery.Selection, rec *models.Row) bool {
		if cell := cellByStat(tr, "sb_qbs"); cell.Length() > 0 {
			rec.Set("qbs", quarterbacks(cell))
		}
		return true
	})
	return models.NewRow().Set("teams", teams), nil
}

// quarterbacks reads "<a>Name</a> (4-0), <a>Name</a> (1-1)".
func quarterbacks(cell *goquery.Selection) []*models.Row {
	qbs := make([]*models.Row, 0)
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		qb := models.NewRow().
			Set("player", extract.Text(a)).
			Set("player_href", extract.Href(a))
		if next := a.Get(0).NextSibling; next != nil && next.Type == html.TextNode {
			if m := qbRecordRe.FindStringSubmatch(next.Data); m != nil {
				qb.Set("record", m[1])
			}
		}
		qbs = append(qbs, qb)
	})
	return qbs
}
