package pages

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/bio"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var (
	officialStats = extract.TableSpec{
		ID:  "official_stats",
		Int: []string{"g", "g_playoffs", "home", "visitor", "pen_total", "pen_yds"},
		Percent: []string{
			"home_pct", "home_wpct", "pen_per_g", "pen_yds_per_g",
			"lg_home_pct", "lg_home_wpct", "lg_pen_per_g", "lg_pen_yds_per_g",
			"rel_home_pct", "rel_home_wpct", "rel_pen_per_g", "rel_pen_yds_per_g",
		},
		Links: map[string]string{"year_id": "year"},
	}
	officialGames = extract.TableSpec{
		ID: "games",
		Int: []string{
			"points_opp", "penalties_opp", "penalties_yds_opp",
			"points", "penalties", "penalties_yds",
		},
		Links: map[string]string{"game_date": "boxscore", "team": "team", "opp": "opp"},
	}
)

// parseOfficial reads /officials/{official_id}.htm.
func parseOfficial(doc *goquery.Document, params Params) (*models.Document, error) {
	meta := metaPanel(doc)
	info := models.NewRow().Set("name", coerce.Str(heading(meta)))
	if e, ok := bio.Harvest(meta).Lookup("Position"); ok {
		info.Set("position", coerce.Str(e.Text))
	}
	return models.NewRow().
		Set("official_id", params.Str("official_id")).
		Set("bio", info).
		Set("official_stats", extract.Extract(doc, officialStats)).
		Set("games", extract.Extract(doc, officialGames)), nil
}
