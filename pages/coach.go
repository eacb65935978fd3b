package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/bio"
	"github.com/use-agent/gridiron/coerce"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

var coachBioLabels = map[string]bool{
	"Born":             true,
	"College":          true,
	"College Coaching": true,
	"High School":      true,
	"As Exec":          true,
	"Relatives":        true,
}

var (
	coachingResults = extract.TableSpec{
		ID: "coaching_results",
		Int: []string{
			"age", "g", "wins", "losses", "ties", "g_playoffs", "wins_playoffs",
			"losses_playoffs", "rank_team", "chall_num", "chall_won",
		},
		Float: []string{"srs_total", "srs_offense", "srs_defense"},
		Links: map[string]string{"year_id": "year", "team": "team", "g": "g"},
	}
	coachingTotals = extract.TableSpec{
		ID:        "coaching_results",
		Container: extract.Foot,
		Int: []string{
			"g", "wins", "losses", "ties", "g_playoffs", "wins_playoffs",
			"losses_playoffs", "chall_num", "chall_won",
		},
		Float:   []string{"rank_avg"},
		Renames: map[string]string{"year_id": "label"},
	}
	coachingRanks = extract.TableSpec{
		ID: "coaching_ranks",
		Int: []string{
			"teams_in_league", "rank_win_percentage", "rank_takeaway_giveaway",
			"rank_points_diff", "rank_yds_diff", "rank_off_yds", "rank_off_pts",
			"rank_off_turnovers", "rank_off_rush_att", "rank_off_rush_yds",
			"rank_off_rush_td", "rank_off_rush_yds_per_att", "rank_off_fumbles_lost",
			"rank_off_pass_att", "rank_off_pass_yds", "rank_off_pass_td",
			"rank_off_pass_int", "rank_off_pass_net_yds_per_att", "rank_def_yds",
			"rank_def_pts", "rank_def_turnovers", "rank_def_rush_att",
			"rank_def_rush_yds", "rank_def_rush_td", "rank_def_rush_yds_per_att",
			"rank_def_fumbles_rec", "rank_def_pass_att", "rank_def_pass_yds",
			"rank_def_pass_td", "rank_def_pass_int", "rank_def_pass_net_yds_per_att",
		},
	}
	coachingHistory = extract.TableSpec{
		ID:    "coaching_history",
		Int:   []string{"coach_age"},
		Links: map[string]string{"coach_employer": "coach_employer"},
	}
	challengeResults = extract.TableSpec{
		ID:    "challenge_results",
		Int:   []string{"down", "yds_to_go"},
		Links: map[string]string{"game_date": "game_date"},
	}
)

func coachingTree(id string) extract.TableSpec {
	return extract.TableSpec{
		ID:    id,
		Links: map[string]string{"coach_name": "coach"},
	}
}

// parseCoach reads /coaches/{coach_id}.htm.
func parseCoach(doc *goquery.Document, params Params) (*models.Document, error) {
	results := extract.Find(doc, "coaching_results")
	return models.NewRow().
		Set("coach_id", params.Str("coach_id")).
		Set("bio", coachBio(metaPanel(doc))).
		Set("coaching_results", extract.ExtractTable(results, coachingResults)).
		Set("coaching_results_totals", extract.ExtractTable(results, coachingTotals)).
		Set("coaching_ranks", extract.Extract(doc, coachingRanks)).
		Set("coaching_history", extract.Extract(doc, coachingHistory)).
		Set("challenge_results", extract.Extract(doc, challengeResults)).
		Set("worked_for", extract.Extract(doc, coachingTree("worked_for"))).
		Set("employed", extract.Extract(doc, coachingTree("employed"))), nil
}

func coachBio(meta *goquery.Selection) *models.Row {
	out := models.NewRow().Set("name", "")
	if meta.Length() == 0 {
		return out
	}
	out.Set("name", heading(meta))
	out.Set("photo_url", photoURL(meta))

	for _, e := range bio.Harvest(meta) {
		switch {
		case e.Label == "":
			continue
		case !coachBioLabels[e.Label]:
			if out.Has("full_name") {
				continue
			}
			full, nicks, _ := strings.Cut(e.Label, "(")
			out.Set("full_name", strings.TrimSpace(full))
			out.Set("nicknames", bio.ParseNicknames(nicks))
		case e.Label == "Born":
			birth := bio.ParseBirth(e.Para)
			out.Set("birth_date", birth.Date)
			out.Set("birth_city", birth.City)
			out.Set("birth_state", birth.State)
		case e.Label == "College":
			setAnchor(out, "college", e)
		case e.Label == "College Coaching":
			var href any
			if a, ok := e.FirstAnchor(); ok {
				href = coerce.Str(a.Href)
			}
			out.Set("college_coaching_href", href)
		case e.Label == "High School":
			schools := []string{}
			for _, a := range e.Anchors {
				if strings.Contains(a.Href, "high_schools.cgi?id=") {
					schools = append(schools, a.Text)
				}
			}
			out.Set("high_schools", schools)
		default:
			key := extract.Snakify(e.Label)
			out.Set(key, coerce.Str(e.Text))
			var href any
			if a, ok := e.FirstAnchor(); ok {
				href = coerce.Str(a.Href)
			}
			out.Set(key+"_href", href)
		}
	}
	return out
}

var (
	execResults = extract.TableSpec{
		ID:  "exec_results",
		Int: []string{"wins", "losses", "ties", "wins_playoffs", "losses_playoffs"},
		Renames: map[string]string{
			"year_id":         "year",
			"league_id":       "league",
			"win_loss_perc":   "win_loss_pct",
			"wins_playoffs":   "playoff_wins",
			"losses_playoffs": "playoff_losses",
		},
		Links: map[string]string{"year_id": "year", "team": "team", "playoff_result": "playoff_result"},
	}
	execTotals = extract.TableSpec{
		ID:        "exec_results",
		Container: extract.Foot,
		Int:       []string{"wins", "losses", "ties", "wins_playoffs", "losses_playoffs"},
		Renames: map[string]string{
			"team":            "label",
			"job_title":       "tenure",
			"wins_playoffs":   "playoff_wins",
			"losses_playoffs": "playoff_losses",
		},
	}
)

// parseExecutive reads /executives/{executive_id}.htm.
func parseExecutive(doc *goquery.Document, params Params) (*models.Document, error) {
	results := extract.Find(doc, "exec_results")
	return models.NewRow().
		Set("executive_id", params.Str("executive_id")).
		Set("bio", models.NewRow().Set("name", heading(doc.Selection))).
		Set("exec_results", extract.ExtractTable(results, execResults)).
		Set("exec_results_totals", extract.ExtractTable(results, execTotals)), nil
}
