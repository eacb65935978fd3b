package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
	"golang.org/x/net/html"
)

// weekLeaderFields maps the stat labels of a week game block to the
// field prefix of that game's leader.
var weekLeaderFields = map[string]string{
	"PassYds": "top_passer",
	"RushYds": "top_rusher",
	"RecYds":  "top_receiver",
}

// weekGame reads one div.game_summary of a week page: a date row then
// the away and home rows, plus a small leaders table.
func weekGame(block *goquery.Selection) *models.Row {
	teams := block.Find("table.teams").First()
	rows := teams.Find("tr")
	if teams.Length() == 0 || rows.Length() < 3 {
		return nil
	}
	game := models.NewRow()
	game.Set("game_date", coerce.Str(extract.Text(rows.Eq(0).Find("td").First())))

	away, home := rows.Eq(1), rows.Eq(2)
	summaryTeam(game, "away", away)
	if href := extract.Href(away.Find("td.gamelink").First()); href != nil {
		game.Set("boxscore_href", href)
	}
	summaryTeam(game, "home", home)

	switch {
	case away.HasClass("winner"):
		game.Set("winner", "away")
	case away.HasClass("loser"):
		game.Set("winner", "home")
	}

	block.Find("table.stats tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return
		}
		prefix, ok := weekLeaderFields[extract.Text(cells.Eq(0))]
		if !ok {
			return
		}
		if a := cells.Eq(1).Find("a").First(); a.Length() > 0 {
			game.Set(prefix, extract.Text(a))
			game.Set(prefix+"_href", extract.Href(a))
		}
		game.Set(prefix+"_yds", coerce.Number(extract.Text(cells.Eq(2))))
	})
	return game
}

func summaryTeam(game *models.Row, side string, tr *goquery.Selection) {
	cells := tr.ChildrenFiltered("td")
	if cells.Length() == 0 {
		return
	}
	if a := cells.Eq(0).Find("a").First(); a.Length() > 0 {
		game.Set(side+"_team", extract.Text(a))
		game.Set(side+"_team_href", extract.Href(a))
	}
	if cells.Length() > 1 {
		game.Set(side+"_score", coerce.Integer(extract.Text(cells.Eq(1))))
	}
}

// notableGame reads one div.game_summary of a stadium page: a "date" row
// holding a label and a date split by <br>, two team rows and a leaders
// table.
func notableGame(block *goquery.Selection) *models.Row {
	teams := block.Find("table.teams").First()
	if teams.Length() == 0 {
		return nil
	}
	summary := models.NewRow()
	var teamRows []*goquery.Selection
	teams.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !tr.HasClass("date") {
			teamRows = append(teamRows, tr)
			return
		}
		label, date := splitAtBreak(tr.Find("td").First())
		if label != "" {
			summary.Set("label", label)
		}
		if date != "" {
			summary.Set("date", date)
		}
	})

	for i, tr := range teamRows {
		if i == 2 {
			break
		}
		prefix := "team_1"
		if i == 1 {
			prefix = "team_2"
		}
		if a := tr.Find("a").First(); a.Length() > 0 {
			summary.Set(prefix, extract.Text(a))
			if href := extract.Href(a); href != nil {
				summary.Set(prefix+"_href", href)
			}
		}
		tr.ChildrenFiltered("td.right").Not(".gamelink").EachWithBreak(func(_ int, td *goquery.Selection) bool {
			if score := coerce.Integer(extract.Text(td)); score != nil {
				summary.Set(prefix+"_score", score)
			}
			return false
		})
		if href := extract.Href(tr.Find("td.gamelink").First()); href != nil {
			summary.Set("boxscore_href", href)
		}
	}

	leaders := make([]*models.Row, 0)
	block.Find("table.stats tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < 3 {
			return
		}
		leader := models.NewRow().
			Set("stat_name", extract.Text(cells.Eq(0))).
			Set("player", extract.Text(cells.Eq(1)))
		if href := extract.Href(cells.Eq(1)); href != nil {
			leader.Set("player_href", href)
		}
		leaders = append(leaders, leader.Set("value", extract.Text(cells.Eq(2))))
	})
	return summary.Set("leaders", leaders)
}

// splitAtBreak returns the text before and after the first <br> of td.
func splitAtBreak(td *goquery.Selection) (before, after string) {
	if td.Length() == 0 {
		return "", ""
	}
	var head, tail []string
	seen := false
	for c := td.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "br" && !seen {
			seen = true
			continue
		}
		text := extract.Clean(htmlquery.InnerText(c))
		if text == "" {
			continue
		}
		if seen {
			tail = append(tail, text)
		} else {
			head = append(head, text)
		}
	}
	if !seen {
		return "", ""
	}
	return strings.Join(head, " "), strings.Join(tail, " ")
}
