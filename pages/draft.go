package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var (
	draftInts = []string{
		"draft_round", "draft_pick", "age", "year_max", "all_pros_first_team",
		"pro_bowls", "years_as_primary_starter", "career_av", "draft_av", "g",
		"pass_cmp", "pass_att", "pass_yds", "pass_td", "pass_int", "rush_att",
		"rush_yds", "rush_td", "rec", "rec_yds", "rec_td", "tackles_solo",
		"def_int", "weight", "bench_reps", "broad_jump",
	}
	draftFloats = []string{"sacks", "forty_yd", "vertical", "cone", "shuttle"}
)

var (
	yearDraft = extract.TableSpec{
		ID:       "drafts",
		Int:      draftInts,
		Float:    draftFloats,
		IDColumn: "player",
		Renames:  map[string]string{"college_id": "college", "college_link": "college_stats"},
		Links: map[string]string{
			"player":       "player",
			"team":         "team",
			"college_id":   "college",
			"college_link": "college_stats",
		},
	}
	combine = extract.TableSpec{
		ID:       "combine",
		Int:      draftInts,
		Float:    draftFloats,
		IDColumn: "player",
		Renames:  map[string]string{"school_name": "school", "college": "college_stats"},
		Links: map[string]string{
			"player":      "player",
			"school_name": "school",
			"college":     "college_stats",
		},
	}
	teamDraft = extract.TableSpec{
		ID:       "draft",
		Int:      append([]string{"year_id"}, draftInts...),
		Float:    draftFloats,
		IDColumn: "player",
		Renames:  map[string]string{"year_id": "year", "college_id": "college"},
		Links: map[string]string{
			"year_id":    "year",
			"player":     "player",
			"college_id": "college",
		},
	}
)

// parseDraft reads /years/{year}/draft.htm.
func parseDraft(doc *goquery.Document, params Params) (*models.Document, error) {
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("picks", extract.Extract(doc, yearDraft)), nil
}

// parseCombine reads /draft/{year}-combine.htm. The "Tm / Rnd / Pick /
// Year" draft cell is split into its parts.
func parseCombine(doc *goquery.Document, params Params) (*models.Document, error) {
	entries := extract.ExtractTableFunc(extract.Find(doc, combine.ID), combine,
		func(tr *goquery.Selection, rec *models.Row) bool {
			splitDraftInfo(cellByStat(tr, "draft_info"), rec)
			return true
		})
	return models.NewRow().
		Set("year", params.Int("year")).
		Set("entries", entries), nil
}

func splitDraftInfo(cell *goquery.Selection, rec *models.Row) {
	text := extract.Text(cell)
	if text == "" {
		return
	}
	parts := strings.Split(text, "/")
	if len(parts) >= 3 {
		rec.Set("drafted_team", strings.TrimSpace(parts[0]))
		rec.Set("drafted_round", strings.TrimSpace(parts[1]))
		rec.Set("drafted_pick", strings.TrimSpace(parts[2]))
	}
	// the year is the linked part that reads as a number
	cell.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if year := coerce.Integer(extract.Text(a)); year != nil {
			rec.Set("drafted_year", year)
			return false
		}
		return true
	})
}

// parseTeamDraft reads /teams/{team}/draft.htm.
func parseTeamDraft(doc *goquery.Document, params Params) (*models.Document, error) {
	return models.NewRow().
		Set("team", params.Str("team")).
		Set("picks", extract.Extract(doc, teamDraft)), nil
}
