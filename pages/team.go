package pages

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/bio"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var recordRe = regexp.MustCompile(`\d+-\d+-\d+`)

// teamMetaFields maps the labels of the team season panel to output keys.
// Labels listed in teamMetaLinks also carry the link of their value.
var (
	teamMetaFields = map[string]string{
		"Record":                "record",
		"Coach":                 "coach",
		"Points For":            "points_for",
		"Points Against":        "points_against",
		"Expected W-L":          "expected_wl",
		"Playoffs":              "playoffs",
		"Offensive Coordinator": "offensive_coordinator",
		"Defensive Coordinator": "defensive_coordinator",
		"Stadium":               "stadium",
		"Offensive Scheme":      "offensive_scheme",
		"Defensive Alignment":   "defensive_alignment",
		"Preseason Odds":        "preseason_odds",
		"Training Camp":         "training_camp",
	}
	teamMetaLinks = map[string]bool{
		"Coach":                 true,
		"Offensive Coordinator": true,
		"Defensive Coordinator": true,
		"Stadium":               true,
	}
)

var teamGames = extract.TableSpec{
	ID: "games",
	Int: []string{
		"pts_off", "pts_def",
		"first_down_off", "yards_off", "pass_yds_off", "rush_yds_off", "to_off",
		"first_down_def", "yards_def", "pass_yds_def", "rush_yds_def", "to_def",
	},
	Float: []string{"exp_pts_off", "exp_pts_def", "exp_pts_st"},
	Links: map[string]string{"opp": "opp", "boxscore_word": "boxscore_word"},
}

// parseTeamSeason reads /teams/{team}/{year}.htm.
func parseTeamSeason(doc *goquery.Document, params Params) (*models.Document, error) {
	labeled := extract.TableSpec{Default: coerce.Numeric}
	return models.NewRow().
		Set("team", params.Str("team")).
		Set("year", params.Int("year")).
		Set("meta", teamSeasonMeta(metaPanel(doc))).
		Set("team_stats", extract.Labeled(extract.Find(doc, "team_stats"), labeled, "player")).
		Set("games", teamSeasonGames(extract.Find(doc, "games"))).
		Set("team_conversions", extract.Labeled(extract.Find(doc, "team_conversions"), labeled, "player")).
		Set("passing", extract.Extract(doc, nameDisplayTable("passing"))).
		Set("passing_post", extract.Extract(doc, nameDisplayTable("passing_post"))).
		Set("rushing_and_receiving", extract.Extract(doc, nameDisplayTable("rushing_and_receiving"))), nil
}

// teamSeasonGames keeps bye weeks: the bye row has no stats, so its stat
// columns stay null and it is flagged rather than dropped.
func teamSeasonGames(table *goquery.Selection) []*models.Row {
	return extract.ExtractTableFunc(table, teamGames, func(_ *goquery.Selection, rec *models.Row) bool {
		rec.Set("is_bye_week", strings.EqualFold(rec.String("opp"), "Bye Week"))
		return true
	})
}

func teamSeasonMeta(meta *goquery.Selection) *models.Row {
	out := models.NewRow()
	for _, e := range bio.Harvest(meta) {
		switch {
		case e.Label == "SRS":
			out.Set("srs", leadingFloat(e.Text))
			continue
		case e.Label == "SOS":
			out.Set("sos", leadingFloat(e.Text))
			continue
		}
		key, ok := teamMetaFields[e.Label]
		if !ok {
			continue
		}
		switch e.Label {
		case "Record":
			out.Set(key, coerce.Str(recordRe.FindString(e.Text)))
			if a, ok := e.FirstAnchor(); ok {
				out.Set("division", a.Text)
				out.Set("division_href", a.Href)
			}
		case "Coach":
			setAnchor(out, key, e)
		default:
			out.Set(key, coerce.Str(e.Text))
			if teamMetaLinks[e.Label] {
				var href any
				if a, ok := e.FirstAnchor(); ok {
					href = coerce.Str(a.Href)
				}
				out.Set(key+"_href", href)
			}
		}
	}
	return out
}

var (
	franchiseMetaFields = map[string]string{
		"Team Names":         "team_names",
		"Seasons":            "seasons",
		"Record (W-L-T)":     "record",
		"Playoff Record":     "playoff_record",
		"Super Bowls Won":    "super_bowls_won",
		"Championships Won*": "championships_won",
	}
	franchiseLeaders = map[string]string{
		"All-time Passing Leader":               "all_time_passing_leader",
		"All-time Rushing Leader":               "all_time_rushing_leader",
		"All-time Receiving Leader":             "all_time_receiving_leader",
		"All-time Scoring Leader":               "all_time_scoring_leader",
		"All-time AV Leader":                    "all_time_av_leader",
		"Winningest Coach (including playoffs)": "winningest_coach",
	}
)

var franchiseIndex = extract.TableSpec{
	ID: "team_index",
	Int: []string{
		"wins", "losses", "ties", "points", "points_opp", "points_diff",
		"rank_off_pts", "rank_off_yds", "rank_def_pts", "rank_def_yds",
		"rank_takeaway_giveaway", "rank_points_diff", "rank_yds_diff", "teams_in_league",
	},
	Float: []string{"mov", "sos_total", "srs_total", "srs_offense", "srs_defense"},
	Links: map[string]string{
		"year_id":        "year",
		"league_id":      "league",
		"team":           "team",
		"coaches":        "coaches",
		"playoff_result": "playoff_result",
		"av":             "av",
		"passer":         "passer",
		"rusher":         "rusher",
		"receiver":       "receiver",
	},
	Titles: []string{"av", "passer", "rusher", "receiver"},
}

// parseFranchise reads /teams/{team}/.
func parseFranchise(doc *goquery.Document, params Params) (*models.Document, error) {
	meta := models.NewRow()
	for _, e := range bio.Harvest(metaPanel(doc)) {
		if key, ok := franchiseMetaFields[e.Label]; ok {
			meta.Set(key, coerce.Str(e.Text))
			continue
		}
		key, ok := franchiseLeaders[e.Label]
		if !ok {
			continue
		}
		a, ok := e.FirstAnchor()
		if !ok {
			continue
		}
		meta.Set(key, models.NewRow().
			Set("name", a.Text).
			Set("href", coerce.Str(a.Href)).
			Set("stats", strings.TrimSpace(strings.Replace(e.Text, a.Text, "", 1))))
	}
	return models.NewRow().
		Set("team", params.Str("team")).
		Set("meta", meta).
		Set("team_index", extract.Extract(doc, franchiseIndex)), nil
}
