// Package pages composes extractor and bio parser output into one
// document per Pro-Football-Reference page type. It is the only layer that
// knows which table ids and panels a given page carries.
package pages

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/cleaner"
	"github.com/use-agent/gridiron/models"
)

// DefaultBaseURL is the site the path templates are relative to.
const DefaultBaseURL = "https://www.pro-football-reference.com"

// Params carries the page parameters (year, team, award ...) that a page
// echoes into its document or needs to build its URL.
type Params map[string]string

// Int returns the parameter as an int, or nil when absent or not numeric.
func (p Params) Int(key string) any {
	if n, err := strconv.Atoi(strings.TrimSpace(p[key])); err == nil {
		return n
	}
	return nil
}

// Str returns the parameter, or nil when absent.
func (p Params) Str(key string) any {
	if v := strings.TrimSpace(p[key]); v != "" {
		return v
	}
	return nil
}

// ParseFunc parses an unwrapped page.
type ParseFunc func(doc *goquery.Document, params Params) (*models.Document, error)

// Page describes one supported page type.
type Page struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Path is the URL path template; {name} segments are filled from Params.
	Path string `json:"path"`
	// WaitFor is the selector a browser fetch waits for before the page is
	// considered rendered.
	WaitFor string   `json:"wait_for"`
	Params  []string `json:"params,omitempty"`

	parse ParseFunc
}

var pathParamRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// URL fills the path template from params and joins it to base.
func (p Page) URL(base string, params Params) (string, error) {
	if base == "" {
		base = DefaultBaseURL
	}
	var missing []string
	path := pathParamRe.ReplaceAllStringFunc(p.Path, func(m string) string {
		name := m[1 : len(m)-1]
		v := strings.TrimSpace(params[name])
		if v == "" {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", models.NewParseError(models.ErrCodeInvalidInput,
			fmt.Sprintf("page %q needs parameter(s): %s", p.Name, strings.Join(missing, ", ")), nil)
	}
	return strings.TrimRight(base, "/") + path, nil
}

var registry = map[string]Page{}

func register(p Page) {
	if _, dup := registry[p.Name]; dup {
		panic("pages: duplicate page type " + p.Name)
	}
	registry[p.Name] = p
}

func init() {
	for _, p := range []Page{
		{Name: "schedule", Description: "Season schedule and results", Path: "/years/{year}/games.htm", WaitFor: "#games", Params: []string{"year"}, parse: parseSchedule},
		{Name: "game", Description: "Box score", Path: "/boxscores/{game_id}.htm", WaitFor: "#scoring", Params: []string{"game_id"}, parse: parseGame},
		{Name: "player", Description: "Player profile", Path: "/players/{letter}/{player_id}.htm", WaitFor: "#meta", Params: []string{"letter", "player_id"}, parse: parsePlayer},
		{Name: "team_season", Description: "Team season", Path: "/teams/{team}/{year}.htm", WaitFor: "#games", Params: []string{"team", "year"}, parse: parseTeamSeason},
		{Name: "franchise", Description: "Team franchise index", Path: "/teams/{team}/", WaitFor: "#team_index", Params: []string{"team"}, parse: parseFranchise},
		{Name: "coach", Description: "Coach profile", Path: "/coaches/{coach_id}.htm", WaitFor: "#coaching_results", Params: []string{"coach_id"}, parse: parseCoach},
		{Name: "draft", Description: "Annual draft", Path: "/years/{year}/draft.htm", WaitFor: "#drafts", Params: []string{"year"}, parse: parseDraft},
		{Name: "combine", Description: "Combine measurements", Path: "/draft/{year}-combine.htm", WaitFor: "#combine", Params: []string{"year"}, parse: parseCombine},
		{Name: "team_draft", Description: "Team draft history", Path: "/teams/{team}/draft.htm", WaitFor: "#draft", Params: []string{"team"}, parse: parseTeamDraft},
		{Name: "executive", Description: "Executive profile", Path: "/executives/{executive_id}.htm", WaitFor: "#exec_results", Params: []string{"executive_id"}, parse: parseExecutive},
		{Name: "fantasy", Description: "Top fantasy players", Path: "/years/{year}/fantasy.htm", WaitFor: "#fantasy", Params: []string{"year"}, parse: parseFantasy},
		{Name: "leaders", Description: "Stat leaders", Path: "/leaders/{stat}_{scope}.htm", WaitFor: "table.stats_table", Params: []string{"stat", "scope"}, parse: parseLeaders},
		{Name: "colleges", Description: "Player colleges", Path: "/schools/", WaitFor: "#college_stats_table", parse: parseColleges},
		{Name: "high_schools", Description: "Player high schools", Path: "/schools/high_schools.cgi", WaitFor: "#high_schools", parse: parseHighSchools},
		{Name: "season", Description: "Season overview", Path: "/years/{year}/", WaitFor: "#AFC", Params: []string{"year"}, parse: parseSeason},
		{Name: "season_stats", Description: "Season stat category", Path: "/years/{year}/{category}.htm", WaitFor: "table", Params: []string{"year", "category"}, parse: parseSeasonStats},
		{Name: "week", Description: "Week summary", Path: "/years/{year}/week_{week}.htm", WaitFor: ".game_summaries", Params: []string{"year", "week"}, parse: parseWeek},
		{Name: "stadium", Description: "Stadium history", Path: "/stadiums/{stadium_id}.htm", WaitFor: "#leaders", Params: []string{"stadium_id"}, parse: parseStadium},
		{Name: "official", Description: "Official profile", Path: "/officials/{official_id}.htm", WaitFor: "#official_stats", Params: []string{"official_id"}, parse: parseOfficial},
		{Name: "superbowl_history", Description: "Super Bowl history", Path: "/super-bowl/", WaitFor: "#super_bowls", parse: parseSuperBowlHistory},
		{Name: "superbowl_leaders", Description: "Super Bowl leaders", Path: "/super-bowl/leaders.htm", WaitFor: "table", parse: parseSuperBowlLeaders},
		{Name: "superbowl_standings", Description: "Super Bowl standings", Path: "/super-bowl/standings.htm", WaitFor: "#standings", parse: parseSuperBowlStandings},
		{Name: "award", Description: "Award history", Path: "/awards/{award}.htm", WaitFor: "#awards", Params: []string{"award"}, parse: parseAward},
		{Name: "hof", Description: "Hall of Fame", Path: "/hof/", WaitFor: "#hof_players", parse: parseHOF},
		{Name: "probowl", Description: "Pro Bowl roster", Path: "/years/{year}/probowl.htm", WaitFor: "#pro_bowl", Params: []string{"year"}, parse: parseProBowl},
	} {
		register(p)
	}
}

// Lookup returns the page type registered under name.
func Lookup(name string) (Page, error) {
	p, ok := registry[name]
	if !ok {
		return Page{}, models.NewParseError(models.ErrCodeUnknownPage,
			fmt.Sprintf("unknown page type %q", name), nil)
	}
	return p, nil
}

// List returns every page type sorted by name.
func List() []Page {
	out := make([]Page, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Parse runs the named page composer over rawHTML. Hidden tables are
// unwrapped before any section is read.
func Parse(name, rawHTML string, params Params) (*models.Document, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Parse(rawHTML, params)
}

// Parse runs the page's composer over rawHTML.
func (p Page) Parse(rawHTML string, params Params) (*models.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, models.NewParseError(models.ErrCodeInvalidInput, "empty html", nil)
	}
	start := time.Now()
	doc, err := cleaner.Load(rawHTML)
	if err != nil {
		return nil, models.NewParseError(models.ErrCodeInvalidInput, "parse html", err)
	}
	if params == nil {
		params = Params{}
	}
	out, err := p.parse(doc, params)
	if err != nil {
		slog.Debug("pages: parse failed", "page", p.Name, "error", err)
		return nil, err
	}
	slog.Debug("pages: parsed", "page", p.Name, "keys", out.Len(), "elapsed", time.Since(start))
	return out, nil
}
