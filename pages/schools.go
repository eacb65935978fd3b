package pages

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var colleges = extract.TableSpec{
	ID: "college_stats_table",
	Int: []string{
		"ranker", "players", "players_active", "hofers", "pro_bowls", "g", "td",
		"best_career_av", "most_td", "most_g",
	},
	Renames: map[string]string{
		"ranker":                "rank",
		"g":                     "games",
		"td":                    "touchdowns",
		"player_best_career_av": "best_career_av_player",
		"player_most_td":        "most_td_player",
		"player_most_g":         "most_games_player",
		"most_g":                "most_games",
	},
	Links: map[string]string{
		"college_name":          "college",
		"player_best_career_av": "best_career_av_player",
		"player_most_td":        "most_td_player",
		"player_most_g":         "most_games_player",
	},
}

var highSchools = extract.TableSpec{
	ID:  "high_schools",
	Int: []string{"num_players", "num_active"},
	Renames: map[string]string{
		"high_school_name": "name",
		"hs_city":          "city",
		"hs_state":         "state",
	},
	Links: map[string]string{"high_school_name": "name"},
}

// parseColleges reads /schools/.
func parseColleges(doc *goquery.Document, _ Params) (*models.Document, error) {
	return models.NewRow().Set("colleges", extract.Extract(doc, colleges)), nil
}

// parseHighSchools reads /schools/high_schools.cgi.
func parseHighSchools(doc *goquery.Document, _ Params) (*models.Document, error) {
	return models.NewRow().Set("schools", extract.Extract(doc, highSchools)), nil
}
