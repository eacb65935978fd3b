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

var heightWeightRe = regexp.MustCompile(`\d-\d{1,2}\s*,?\s*\d+\s*lb`)

// parsePlayer reads /players/{letter}/{player_id}.htm.
func parsePlayer(doc *goquery.Document, params Params) (*models.Document, error) {
	return models.NewRow().
		Set("player_id", params.Str("player_id")).
		Set("bio", playerBio(metaPanel(doc))).
		Set("jersey_numbers", bio.ParseJerseyNumbers(doc.Find(".uni_holder").First())).
		Set("summary_stats", statsPullout(doc.Find(".stats_pullout").First())).
		Set("statistics", playerStatistics(doc)).
		Set("transactions", bio.ParseTransactions(doc.Find("#div_transactions").First())).
		Set("links", bottomNav(doc.Find("#bottom_nav_container").First())).
		Set("leader_boards", leaderBoards(doc.Find("#div_leaderboard").First())), nil
}

func playerBio(meta *goquery.Selection) *models.Row {
	out := models.NewRow()
	if meta.Length() == 0 {
		return out
	}
	out.Set("photo_url", photoURL(meta))
	out.Set("name", coerce.Str(heading(meta)))

	info := meta.ChildrenFiltered("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !s.HasClass("media-item")
	}).First()
	if info.Length() == 0 {
		info = meta
	}
	paras := info.Find("p")

	var name bio.Name
	if first := paras.First(); first.Length() > 0 && !strings.Contains(extract.Text(first), ":") {
		name = bio.ParseName(bio.Lines(first))
	} else {
		name = bio.ParseName(nil)
	}
	name.Row().Each(func(k string, v any) { out.Set(k, v) })

	paras.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := extract.Text(p)
		if !strings.Contains(text, "Position") {
			return true
		}
		bio.ParseAttributes(strings.Join(bio.Lines(p), "\n")).Each(func(k string, v any) {
			out.Set(k, v)
		})
		return false
	})

	var height, weight any
	paras.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := extract.Text(p)
		if m := heightWeightRe.FindString(text); m != "" {
			height, weight = bio.ParseHeightWeight(m)
			return false
		}
		return true
	})
	out.Set("height_in", height)
	out.Set("weight", weight)

	panel := bio.Harvest(info)
	var birth bio.Birth
	if e, ok := panel.Lookup("Born"); ok {
		birth = bio.ParseBirth(e.Para)
	}
	out.Set("birth_date", birth.Date)
	out.Set("birth_city", birth.City)
	out.Set("birth_state", birth.State)

	for _, label := range []string{"College", "High School"} {
		key := extract.Snakify(label)
		if e, ok := panel.Lookup(label); ok {
			setAnchor(out, key, e)
		} else {
			out.Set(key, nil)
			out.Set(key+"_href", nil)
		}
	}

	var draft bio.Draft
	if e, ok := panel.Lookup("Draft"); ok {
		draft = bio.ParseDraft(e.Text)
	}
	out.Set("draft_team", draft.Team)
	out.Set("draft_round", draft.Round)
	out.Set("draft_overall", draft.Overall)
	out.Set("draft_year", draft.Year)
	return out
}

// statsPullout pairs the summary headers with their values, skipping the
// "Summary" and "Career" captions.
func statsPullout(pullout *goquery.Selection) *models.Row {
	out := models.NewRow()
	caption := func(s string) bool {
		l := strings.ToLower(s)
		return s == "" || l == "summary" || l == "career"
	}
	var headers []string
	var values []any
	pullout.Find("strong").Each(func(_ int, s *goquery.Selection) {
		if t := extract.Text(s); !caption(t) {
			headers = append(headers, t)
		}
	})
	pullout.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := extract.Text(s); !caption(t) {
			values = append(values, coerce.Number(t))
		}
	})
	for i := 0; i < len(headers) && i < len(values); i++ {
		out.Set(headers[i], values[i])
	}
	return out
}

// playerStatistics reads every stats table except the similarity scores,
// grouped by over-header and split into regular and post season.
func playerStatistics(doc *goquery.Document) *models.Row {
	regular := models.NewRow()
	post := models.NewRow()
	doc.Find("table.stats_table").Each(func(_ int, table *goquery.Selection) {
		id := table.AttrOr("id", "")
		if id == "" || strings.EqualFold(id, "sim_scores") {
			return
		}
		spec := extract.TableSpec{Default: coerce.Numeric, AutoLinks: true}
		rows := extract.ExtractTable(table, spec)
		if m, ok := extract.BuildIndexMap(table); ok {
			for i, rec := range rows {
				rows[i] = m.Group(rec)
			}
		}
		if strings.Contains(id, "_post") {
			post.Set(strings.Replace(id, "_post", "", 1), rows)
		} else {
			regular.Set(id, rows)
		}
	})
	return models.NewRow().Set("regular_season", regular).Set("post_season", post)
}

// bottomNav reads the link directory at the foot of the page: an overview
// link, a general list, then "listhead" labels each followed by a list.
func bottomNav(container *goquery.Selection) *models.Row {
	out := models.NewRow()
	children := container.Children()
	if children.Length() < 2 {
		return out
	}
	out.Set("overview", models.NewRow().Set("href", extract.Href(children.Eq(0))))

	general := models.NewRow()
	children.Eq(1).Find("li").Each(func(_ int, li *goquery.Selection) {
		if key := extract.Snakify(extract.Text(li)); key != "" {
			general.Set(key, extract.Href(li))
		}
	})
	out.Set("general", general)

	label := ""
	children.Slice(2, children.Length()).Each(func(_ int, child *goquery.Selection) {
		if child.HasClass("listhead") {
			label = extract.Snakify(extract.Text(child))
			return
		}
		if goquery.NodeName(child) != "ul" || label == "" {
			return
		}
		links := models.NewRow()
		child.Find("li").Each(func(_ int, li *goquery.Selection) {
			if key := extract.Snakify(extract.Text(li)); key != "" {
				links.Set(key, extract.Href(li))
			}
		})
		out.Set(label, links)
	})
	return out
}

func leaderBoards(container *goquery.Selection) *models.Row {
	out := models.NewRow()
	container.Find(".data_grid_box").Each(func(_ int, box *goquery.Selection) {
		id := box.AttrOr("id", "")
		if id == "" {
			return
		}
		entries := []string{}
		box.Find("td").Each(func(_ int, td *goquery.Selection) {
			entries = append(entries, extract.Text(td))
		})
		out.Set(strings.TrimPrefix(id, "leaderboard_"), entries)
	})
	return out
}
