package bio

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/gridiron/extract"
	"github.com/use-agent/gridiron/models"
)

const transactionDateLayout = "January 2, 2006"

// ParseTransactions reads list items of the form "March 10, 2018: Signed
// ...". The date is returned as YYYY-MM-DD, or nil when it does not match
// the month-day-year layout.
func ParseTransactions(container *goquery.Selection) []*models.Row {
	out := make([]*models.Row, 0)
	container.Find("li").Each(func(_ int, li *goquery.Selection) {
		date, desc, ok := strings.Cut(extract.Text(li), ":")
		if !ok {
			return
		}
		var when any
		if t, err := time.Parse(transactionDateLayout, strings.TrimSpace(date)); err == nil {
			when = t.Format(time.DateOnly)
		}
		out = append(out, models.NewRow().
			Set("date", when).
			Set("description", strings.TrimSpace(desc)))
	})
	return out
}
