package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var (
	honorInts = []string{
		"all_pros_first_team", "pro_bowls", "years_as_primary_starter", "career_av",
		"g", "gs", "pass_cmp", "pass_att", "pass_yds", "pass_td", "pass_long",
		"pass_int", "pass_sacked", "pass_sacked_yds", "rush_att", "rush_yds",
		"rush_td", "rush_long", "rec", "rec_yds", "rec_td", "rec_long",
		"all_purpose_yds", "all_td", "tackles_combined", "tackles_solo", "def_int",
		"age", "experience", "year_min", "year_max",
	}
	honorFloats = []string{"sacks"}
)

var (
	awardWinners = extract.TableSpec{
		ID:       "awards",
		Int:      []string{"year_id"},
		IDColumn: "player",
		Renames:  map[string]string{"year_id": "year", "league_id": "league"},
		Links: map[string]string{
			"year_id": "year",
			"player":  "player",
			"team":    "team",
			"voting":  "voting",
		},
	}
	hofPlayers = extract.TableSpec{
		ID:       "hof_players",
		Int:      append([]string{"ranker", "year_induction"}, honorInts...),
		Float:    honorFloats,
		IDColumn: "player",
		Renames:  map[string]string{"ranker": "rank"},
		Links:    map[string]string{"player": "player", "year_induction": "year_induction"},
	}
	proBowlers = extract.TableSpec{
		ID:       "pro_bowl",
		Int:      honorInts,
		Float:    honorFloats,
		IDColumn: "player",
		Renames:  map[string]string{"conference_id": "conference"},
		Links:    map[string]string{"player": "player", "team": "team"},
	}
)

// parseAward reads /awards/{award}.htm.
func parseAward(doc *goquery.Document, params Params) (*models.Document, error) {
	return models.NewRow().
		Set("award", params.Str("award")).
		Set("winners", extract.Extract(doc, awardWinners)), nil
}

// parseHOF reads /hof/.
func parseHOF(doc *goquery.Document, _ Params) (*models.Document, error) {
	return models.NewRow().
		Set("players", extract.Extract(doc, hofPlayers)), nil
}

// parseProBowl reads /years/{year}/probowl.htm. The player cell marks
// starters in bold and appends "%" for players who did not play and "+"
// for replacements.
func parseProBowl(doc *goquery.Document, params Params) (*models.Document, error) {
	players := extract.ExtractTableFunc(extract.Find(doc, proBowlers.ID), proBowlers,
		func(tr *goquery.Selection, rec *models.Row) bool {
			cell := cellByStat(tr, "player")
			if cell.Length() == 0 {
				return true
			}
			full := extract.Text(cell)
			name := extract.LinkText(cell)
			if name == "" {
				name = full
			}
			suffix := strings.TrimPrefix(full, name)
			rec.Set("player", name)
			rec.Set("is_starter", cell.Find("strong").Length() > 0)
			rec.Set("did_not_play", strings.Contains(suffix, "%"))
			rec.Set("is_replacement", strings.Contains(suffix, "+"))
			return true
		})
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("players", players), nil
}
