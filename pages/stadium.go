package pages

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var (
	stadiumGamesRe = regexp.MustCompile(`\((\d+)\s+games?\)`)
	yearSpanRe     = regexp.MustCompile(`\((\d{4}-\d{4})\)`)
)

var (
	stadiumLeaders = extract.TableSpec{
		ID:       "leaders",
		Int:      []string{"g"},
		IDColumn: "player",
		Links:    map[string]string{"player": "player"},
		Drop:     []string{"pi"},
	}
	stadiumBestGames = extract.TableSpec{
		IDColumn: "player",
		Links:    map[string]string{"player": "player", "team": "team", "boxscore_word": "boxscore"},
		Drop:     []string{"pi"},
	}
)

// parseStadium reads /stadiums/{stadium_id}.htm.
func parseStadium(doc *goquery.Document, params Params) (*models.Document, error) {
	summaries := make([]*models.Row, 0)
	doc.Find("div.game_summaries div.game_summary").Each(func(_ int, block *goquery.Selection) {
		if s := notableGame(block); s != nil {
			summaries = append(summaries, s)
		}
	})
	return models.NewRow().
		Set("stadium_id", params.Str("stadium_id")).
		Set("bio", stadiumBio(metaPanel(doc))).
		Set("leaders", extract.Extract(doc, stadiumLeaders)).
		Set("best_games", extract.ExtractTable(extract.Find(doc, "games"), stadiumBestGames)).
		Set("best_playoff_games", extract.ExtractTable(extract.Find(doc, "playoff_games"), stadiumBestGames)).
		Set("game_summaries", summaries), nil
}

func stadiumBio(meta *goquery.Selection) *models.Row {
	out := models.NewRow()
	if meta.Length() == 0 {
		return out.Set("name", "").Set("teams", []*models.Row{})
	}
	out.Set("name", strings.TrimSuffix(heading(meta), " History"))

	meta.Find("p").Each(func(_ int, p *goquery.Selection) {
		bold := p.Find("b").First()
		text := extract.Text(p)
		if bold.Length() == 0 {
			if text != "" && !out.Has("address") {
				out.Set("address", text)
			}
			return
		}
		label := strings.TrimSuffix(extract.Text(bold), ":")
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, extract.Text(bold)), ":"))
		switch label {
		case "Years Active":
			if m := stadiumGamesRe.FindStringSubmatchIndex(value); m != nil {
				n, _ := strconv.Atoi(value[m[2]:m[3]])
				out.Set("total_games", n)
				value = strings.TrimSpace(value[:m[0]])
			}
			out.Set("years_active", value)
		case "Surfaces":
			if value != "" {
				out.Set("surfaces", value)
			}
		}
	})
	return out.Set("teams", stadiumTeams(meta.Find("ul").First()))
}

// stadiumTeams reads the tenant list: each team item may be followed by a
// "Regular Season" and a "Playoffs" record item.
func stadiumTeams(ul *goquery.Selection) []*models.Row {
	teams := make([]*models.Row, 0)
	items := ul.Find("li")
	for i := 0; i < items.Length(); {
		li := items.Eq(i)
		team := models.NewRow()
		if a := li.Find("a").First(); a.Length() > 0 {
			team.Set("name", extract.Text(a))
			team.Set("team_href", extract.Href(a))
		} else {
			team.Set("name", extract.Text(li))
		}
		if m := yearSpanRe.FindStringSubmatch(extract.Text(li)); m != nil {
			team.Set("years", m[1])
		}
		i++
		i = stadiumRecord(items, i, "Regular Season", "regular_season", team)
		i = stadiumRecord(items, i, "Playoffs", "playoff", team)
		teams = append(teams, team)
	}
	return teams
}

func stadiumRecord(items *goquery.Selection, i int, marker, prefix string, team *models.Row) int {
	if i >= items.Length() {
		return i
	}
	li := items.Eq(i)
	if !strings.Contains(extract.Text(li), marker) {
		return i
	}
	if a := li.Find("a").First(); a.Length() > 0 {
		team.Set(prefix+"_record", extract.Text(a))
		team.Set(prefix+"_href", extract.Href(a))
	}
	return i + 1
}
