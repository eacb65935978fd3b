package bio

import (
	"strconv"
	"strings"
)

// ParseHeightWeight reads "6-4, 225lb" into height in inches and weight
// with its unit removed. Either value is nil when it cannot be read.
func ParseHeightWeight(text string) (height, weight any) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields) > 0 {
		height = Inches(fields[0])
	}
	if len(fields) > 1 {
		w := strings.TrimSuffix(strings.TrimSuffix(fields[1], "lbs"), "lb")
		if w != "" && w[0] >= '0' && w[0] <= '9' {
			weight = w
		}
	}
	return height, weight
}

// Inches converts "6-4" to 76. Invalid input gives nil.
func Inches(feetInches string) any {
	ft, in, ok := strings.Cut(strings.TrimSpace(feetInches), "-")
	if !ok {
		return nil
	}
	f, err := strconv.Atoi(strings.TrimSpace(ft))
	if err != nil {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(in))
	if err != nil {
		return nil
	}
	return f*12 + i
}
