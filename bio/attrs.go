package bio

import (
	"strings"

	"github.com/use-agent/gridiron/models"
)

var attrSeparators = strings.NewReplacer("\t", "", ":", "\n", "▪", "\n")

// ParseAttributes reads alternating "label: value" tokens such as
// "Position: QB\nThrows: Right" into a map with lowercased labels. A value
// containing "-" is split at the first one into two parts ("WR-KR" gives
// ["WR", "KR"], "LB-DE-OLB" gives ["LB", "DE-OLB"]).
func ParseAttributes(text string) *models.Row {
	var tokens []string
	for _, t := range strings.Split(attrSeparators.Replace(text), "\n") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	out := models.NewRow()
	for i := 0; i+1 < len(tokens); i += 2 {
		key := strings.ToLower(tokens[i])
		val := tokens[i+1]
		if before, after, ok := strings.Cut(val, "-"); ok {
			out.Set(key, []string{strings.TrimSpace(before), strings.TrimSpace(after)})
			continue
		}
		out.Set(key, val)
	}
	return out
}
