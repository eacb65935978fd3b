package bio

import (
	"strings"

	"github.com/use-agent/gridiron/models"
)

var suffixes = map[string]struct{}{
	"sr.": {}, "jr.": {}, "ii": {}, "iii": {}, "iv": {}, "v": {}, "vi": {},
}

// Name is a display name split into its parts.
type Name struct {
	First     string
	Middle    string
	Last      string
	Suffix    string
	Nicknames []string
}

// ParseName splits lines into a name. The first line is the full name;
// any further lines are parenthesised nicknames separated by commas or
// "or".
func ParseName(lines []string) Name {
	n := Name{Nicknames: []string{}}
	if len(lines) == 0 {
		return n
	}
	parts := strings.Fields(lines[0])
	if len(parts) > 1 {
		if _, ok := suffixes[strings.ToLower(parts[len(parts)-1])]; ok {
			n.Suffix = parts[len(parts)-1]
			parts = parts[:len(parts)-1]
		}
	}
	switch len(parts) {
	case 0:
	case 1:
		n.First = parts[0]
	default:
		n.First = parts[0]
		n.Middle = strings.Join(parts[1:len(parts)-1], " ")
		n.Last = parts[len(parts)-1]
	}
	if len(lines) > 1 {
		n.Nicknames = ParseNicknames(strings.Join(lines[1:], " "))
	}
	return n
}

// ParseNicknames reads "(Action Jackson or LJ, Lamar)" into a list.
func ParseNicknames(text string) []string {
	r := strings.NewReplacer("(", "", ")", "", " or ", ",")
	out := []string{}
	for _, nick := range strings.Split(r.Replace(text), ",") {
		if nick = strings.TrimSpace(nick); nick != "" {
			out = append(out, nick)
		}
	}
	return out
}

// Row returns the name as a record.
func (n Name) Row() *models.Row {
	return models.NewRow().
		Set("first_name", n.First).
		Set("middle_name", n.Middle).
		Set("last_name", n.Last).
		Set("suffix", n.Suffix).
		Set("nicknames", n.Nicknames)
}
