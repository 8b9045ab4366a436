package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/transudeck/transudeck/internal/outline"
)

// CSVParser handles CSV files. Rows become bullet lines grouped into
// batches, so drafting yields slides that fit.
type CSVParser struct{}

// rowsPerSection keeps one drafted slide readable.
const rowsPerSection = 10

func (p *CSVParser) Parse(r io.Reader, filename string) (*outline.Outline, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	o := &outline.Outline{
		Title: titleFromFilename(filename, ".csv"),
	}

	if len(records) == 0 {
		return o, nil
	}

	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += rowsPerSection {
		end := i + rowsPerSection
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			text.WriteString("- ")
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
			text.WriteString("\n")
		}

		o.Sections = append(o.Sections, &outline.Section{
			Title: fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Text:  strings.TrimRight(text.String(), "\n"),
		})
	}

	return o, nil
}
