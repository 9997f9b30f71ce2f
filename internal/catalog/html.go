package catalog

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// Selectors for the course listing page. Each course is one table row:
//
//	<table class="courses">
//	  <tr class="course">
//	    <td class="code">DD2424</td><td class="title">Deep Learning</td>
//	    <td class="credits">7.5 hp</td><td class="periods">P3, P4</td>
//	  </tr>
//	</table>
const (
	rowSelector     = "table.courses tr.course"
	codeSelector    = "td.code"
	titleSelector   = "td.title"
	creditsSelector = "td.credits"
	periodsSelector = "td.periods"
)

// ParseHTML scrapes course descriptors from a listing page. Rows with
// unreadable credits keep zero credits; rows without code or title are
// returned as-is and rejected later by validation.
func ParseHTML(r io.Reader) ([]Descriptor, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var descs []Descriptor
	document.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		d := Descriptor{
			Code:    cellText(row, codeSelector),
			Title:   cellText(row, titleSelector),
			Credits: parseCredits(cellText(row, creditsSelector)),
		}
		for _, part := range strings.FieldsFunc(cellText(row, periodsSelector), func(r rune) bool {
			return r == ',' || r == '/' || r == ';'
		}) {
			if p, ok := domain.ParsePeriod(part); ok {
				d.Periods = append(d.Periods, p)
			}
		}
		d.Periods = domain.SortPeriods(d.Periods)
		descs = append(descs, d)
	})
	return descs, nil
}

func cellText(row *goquery.Selection, selector string) string {
	return strings.Join(strings.Fields(row.Find(selector).First().Text()), " ")
}

// parseCredits reads the leading number of a credits cell such as "7.5 hp"
// or "7,5 credits".
func parseCredits(s string) float64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.Replace(fields[0], ",", ".", 1), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
