package injuries

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/delphi/internal/store"
)

// Parse reads every team table of the report. Rows are name, position,
// return date, status, comment; rows with fewer cells are skipped.
func Parse(htmlContent string) ([]*store.InjuryReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var reports []*store.InjuryReport
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		name := cleanText(cells.Eq(0).Text())
		if name == "" {
			return
		}

		statusCell := cells.Eq(3)
		status := cleanText(statusCell.Find("span").First().Text())
		if status == "" {
			status = cleanText(statusCell.Text())
		}

		reports = append(reports, &store.InjuryReport{
			PlayerName: name,
			Status:     status,
			Comment:    cleanText(cells.Eq(4).Text()),
		})
	})

	return reports, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
