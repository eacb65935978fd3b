package bio

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	draftRoundRe = regexp.MustCompile(`(\d{1,2})\w{2} round \((\d{1,3})\w{2} overall\)`)
	draftYearRe  = regexp.MustCompile(`\b(\d{4})\b`)
	titleCaser   = cases.Title(language.English)
)

// Draft is the parsed "Draft:" line. Unknown parts are nil.
type Draft struct {
	Team    any
	Round   any
	Overall any
	Year    any
}

// ParseDraft reads "Draft: Baltimore Ravens in the 1st round (32nd
// overall) of the 2018 NFL Draft." The team is the text before "the"
// without the words "Draft" and "in", title-cased; the year is the first
// four-digit token after the round clause.
func ParseDraft(text string) Draft {
	d := Draft{}
	tail := text
	if m := draftRoundRe.FindStringSubmatchIndex(text); m != nil {
		d.Round, _ = strconv.Atoi(text[m[2]:m[3]])
		d.Overall, _ = strconv.Atoi(text[m[4]:m[5]])
		tail = text[m[1]:]
	}
	if m := draftYearRe.FindStringSubmatch(tail); m != nil {
		d.Year, _ = strconv.Atoi(m[1])
	}

	head := text
	if i := strings.Index(strings.ToLower(head), " the "); i >= 0 {
		head = head[:i]
	}
	var words []string
	for _, w := range strings.Fields(head) {
		switch strings.ToLower(strings.TrimSuffix(w, ":")) {
		case "draft", "in", "":
			continue
		}
		words = append(words, w)
	}
	if len(words) > 0 {
		d.Team = titleCaser.String(strings.Join(words, " "))
	}
	return d
}
