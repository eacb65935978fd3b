package bio

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
)

var (
	birthAttrRe = regexp.MustCompile(`data-birth=(?:"|&#34;|&quot;)?(\d{4}-\d{2}-\d{2})`)
	isoDateRe   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	birthLocRe  = regexp.MustCompile(`(?:^|\s)in\s+(.+)$`)
)

// Birth is a birth date (YYYY-MM-DD) and place. Unknown parts are nil.
type Birth struct {
	Date  any
	City  any
	State any
}

// ParseBirth reads a "Born:" paragraph. The date comes from the
// data-birth attribute; when that element is malformed the paragraph's
// HTML is scanned for an ISO date instead.
func ParseBirth(para *goquery.Selection) Birth {
	b := Birth{}
	if para == nil || para.Length() == 0 {
		return b
	}
	if d, ok := para.Find("[data-birth]").Attr("data-birth"); ok && validDate(d) {
		b.Date = d
	} else if raw, err := goquery.OuterHtml(para); err == nil {
		if d := birthDateFromHTML(raw); d != "" {
			slog.Debug("bio: birth date recovered from raw html", "date", d)
			b.Date = d
		}
	}
	b.City, b.State = ParseBirthPlace(extract.Text(para))
	return b
}

func birthDateFromHTML(raw string) string {
	if m := birthAttrRe.FindStringSubmatch(raw); m != nil && validDate(m[1]) {
		return m[1]
	}
	if m := isoDateRe.FindStringSubmatch(raw); m != nil && validDate(m[1]) {
		return m[1]
	}
	return ""
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	return err == nil
}

// ParseBirthPlace reads "... in Pompano Beach, FL (...)" into city and
// state, split on the last comma.
func ParseBirthPlace(text string) (city, state any) {
	m := birthLocRe.FindStringSubmatch(extract.Clean(text))
	if m == nil {
		return nil, nil
	}
	loc := m[1]
	if i := strings.Index(loc, "("); i >= 0 {
		loc = loc[:i]
	}
	loc = strings.TrimSpace(loc)
	i := strings.LastIndex(loc, ",")
	if i < 0 {
		if loc == "" {
			return nil, nil
		}
		return loc, nil
	}
	c := strings.TrimSpace(loc[:i])
	s := strings.TrimSpace(loc[i+1:])
	if c != "" {
		city = c
	}
	if s != "" {
		state = s
	}
	return city, state
}
