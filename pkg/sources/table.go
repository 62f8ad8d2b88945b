/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Shared HTML table parsing for the web-backed example sources. Turns
a selected table into ordered record objects, header row first, one record per
body row.
*/

package sources

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// parseTable extracts records from the first table matching the selector.
// The header row (th cells, or the first row when no th is present) names
// the fields; each following row becomes one record object in field order.
func parseTable(doc *goquery.Document, selector string) ([]values.Value, error) {
	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table matches selector %q", selector)
	}

	var header []string
	table.Find("th").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, strings.TrimSpace(cell.Text()))
	})

	rows := table.Find("tr")
	start := 0
	if len(header) == 0 {
		// No th cells: the first row is the header
		rows.First().Find("td").Each(func(_ int, cell *goquery.Selection) {
			header = append(header, strings.TrimSpace(cell.Text()))
		})
		start = 1
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("table %q has no header row", selector)
	}

	var records []values.Value
	rows.Each(func(i int, row *goquery.Selection) {
		if i < start {
			return
		}
		cells := row.Find("td")
		if cells.Length() != len(header) {
			return
		}
		pairs := make([]any, 0, len(header)*2)
		cells.Each(func(j int, cell *goquery.Selection) {
			pairs = append(pairs, header[j], cellValue(cell.Text()))
		})
		records = append(records, values.Object(pairs...))
	})
	if len(records) == 0 {
		return nil, fmt.Errorf("table %q has no data rows", selector)
	}
	return records, nil
}
