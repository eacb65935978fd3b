package pages

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var scheduleGames = extract.TableSpec{
	ID:    "games",
	Int:   []string{"pts_win", "pts_lose", "yards_win", "to_win", "yards_lose", "to_lose"},
	Links: map[string]string{"winner": "winner", "loser": "loser", "boxscore_word": "boxscore_word"},
}

// parseSchedule reads /years/{year}/games.htm. The games table is the page's
// anchor: without it the HTML is some other page.
func parseSchedule(doc *goquery.Document, params Params) (*models.Document, error) {
	table := extract.Find(doc, scheduleGames.ID)
	if table.Length() == 0 {
		return nil, models.PageShapeError("schedule", "table#games")
	}
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("games", extract.ExtractTable(table, scheduleGames)), nil
}
