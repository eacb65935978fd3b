package bio

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

// TeamYears is one jersey-number tenure.
type TeamYears struct {
	Team  string
	Start any
	End   any
}

// ParseTeamYears splits "San Francisco 49ers 2019-2025" on its last space.
// A single year gives Start == End.
func ParseTeamYears(text string) TeamYears {
	text = strings.TrimSpace(text)
	i := strings.LastIndex(text, " ")
	if i < 0 {
		return TeamYears{Team: text}
	}
	ty := TeamYears{Team: strings.TrimSpace(text[:i])}
	years := text[i+1:]
	start, end, ranged := strings.Cut(years, "-")
	if s, err := strconv.Atoi(start); err == nil {
		ty.Start = s
		ty.End = s
	}
	if ranged {
		ty.End = nil
		if e, err := strconv.Atoi(end); err == nil {
			ty.End = e
		}
	}
	return ty
}

// ParseJerseyNumbers reads the uniform-number strip. Numbers stay strings
// ("00" is a valid number).
func ParseJerseyNumbers(holder *goquery.Selection) []*models.Row {
	out := make([]*models.Row, 0)
	holder.Find("a").Each(func(_ int, a *goquery.Selection) {
		tip, ok := a.Attr("data-tip")
		if !ok {
			return
		}
		number := extract.Text(a.Find("text"))
		if number == "" {
			number = extract.Text(a)
		}
		ty := ParseTeamYears(tip)
		out = append(out, models.NewRow().
			Set("number", number).
			Set("team", ty.Team).
			Set("start_year", ty.Start).
			Set("end_year", ty.End))
	})
	return out
}
