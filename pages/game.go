package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

// boxscoreTables are the per-player tables of a box score, in page order.
var boxscoreTables = []string{
	"scoring",
	"expected_points",
	"player_offense",
	"player_defense",
	"returns",
	"kicking",
	"home_starters",
	"vis_starters",
	"home_snap_counts",
	"vis_snap_counts",
	"home_drives",
	"vis_drives",
}

// parseGame reads /boxscores/{game_id}.htm.
func parseGame(doc *goquery.Document, params Params) (*models.Document, error) {
	out := models.NewRow().
		Set("game_id", params.Str("game_id")).
		Set("scorebox", scorebox(doc)).
		Set("linescore", linescore(doc))

	for _, id := range boxscoreTables {
		out.Set(id, extract.Extract(doc, playerTable(id)))
	}
	out.Set("game_info", extract.KeyValue(extract.Find(doc, "game_info")))
	out.Set("officials", extract.KeyValue(extract.Find(doc, "officials")))
	out.Set("team_stats", teamStats(extract.Find(doc, "team_stats")))
	return out, nil
}

func scorebox(doc *goquery.Document) *models.Row {
	out := models.NewRow()
	box := doc.Find("div.scorebox").First()
	if box.Length() == 0 {
		return out
	}
	var teams []*models.Row
	box.Find("div.scorebox_team").EachWithBreak(func(_ int, team *goquery.Selection) bool {
		teams = append(teams, scoreboxTeam(team))
		return len(teams) < 2
	})
	if len(teams) == 2 {
		out.Set("away", teams[0])
		out.Set("home", teams[1])
	}

	meta := models.NewRow()
	box.Find("div.scorebox_meta").First().ChildrenFiltered("div").Each(func(_ int, div *goquery.Selection) {
		strong := div.Find("strong").First()
		if strong.Length() == 0 {
			if div.Find("em").Length() == 0 {
				if text := extract.Text(div); text != "" {
					meta.Set("date", text)
				}
			}
			return
		}
		label := strings.TrimSuffix(extract.Text(strong), ":")
		value := strings.TrimSpace(strings.TrimPrefix(extract.Text(div), extract.Text(strong)))
		value = strings.TrimSpace(strings.TrimLeft(value, ": "))
		if key := extract.Snakify(label); key != "" {
			meta.Set(key, coerce.Str(value))
		}
	})
	out.Set("meta", meta)
	return out
}

func scoreboxTeam(team *goquery.Selection) *models.Row {
	rec := models.NewRow()
	link := team.Find("strong a").First()
	rec.Set("name", coerce.Str(extract.Text(link)))
	rec.Set("href", extract.Href(link))
	rec.Set("score", coerce.Integer(extract.Text(team.Find("div.score").First())))

	var record any
	if next := team.Find("div.scores").First().Next(); next.Length() > 0 && goquery.NodeName(next) == "div" {
		record = coerce.Str(extract.Text(next))
	}
	rec.Set("record", record)

	coach := team.Find("div.datapoint a").First()
	rec.Set("coach", coerce.Str(extract.Text(coach)))
	rec.Set("coach_href", extract.Href(coach))
	return rec
}

// linescore reads quarter scores. When the header count matches the score
// count, scores are keyed by header ("1", "2", "OT", "Final"); otherwise
// they stay a list.
func linescore(doc *goquery.Document) []*models.Row {
	out := make([]*models.Row, 0)
	table := doc.Find("table.linescore").First()
	if table.Length() == 0 {
		return out
	}
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		if text := extract.Text(th); text != "" {
			headers = append(headers, text)
		}
	})
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return
		}
		teamCell := cells.Eq(1)
		rec := models.NewRow()
		if teamCell.Find("a").Length() > 0 {
			rec.Set("team", coerce.Str(extract.LinkText(teamCell)))
		} else {
			rec.Set("team", coerce.Str(extract.Text(teamCell)))
		}
		rec.Set("team_href", extract.Href(teamCell))

		var scores []any
		cells.Slice(2, cells.Length()).Each(func(_ int, td *goquery.Selection) {
			scores = append(scores, coerce.Integer(extract.Text(td)))
		})
		if len(headers) > 0 && len(headers) == len(scores) {
			quarters := models.NewRow()
			for i, h := range headers {
				quarters.Set(h, scores[i])
			}
			rec.Set("quarters", quarters)
		} else {
			rec.Set("quarters", scores)
		}
		out = append(out, rec)
	})
	return out
}

// teamStats reads the three-column visitor/home comparison table.
func teamStats(table *goquery.Selection) *models.Row {
	out := models.NewRow()
	if table.Length() == 0 {
		return out
	}
	vis, home := "vis", "home"
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		switch th.AttrOr("data-stat", "") {
		case "vis_stat":
			vis = extract.Text(th)
		case "home_stat":
			home = extract.Text(th)
		}
	})
	stats := models.NewRow()
	extract.Rows(table, extract.Body).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() < 3 {
			return
		}
		key := extract.Snakify(extract.Text(cells.Eq(0)))
		if key == "" {
			return
		}
		stats.Set(key, models.NewRow().
			Set("vis", coerce.Str(extract.Text(cells.Eq(1)))).
			Set("home", coerce.Str(extract.Text(cells.Eq(2)))))
	})
	return out.Set("vis_team", vis).Set("home_team", home).Set("stats", stats)
}
