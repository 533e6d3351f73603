package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kofiasare/hotelmetrics/constants"
)

// CSVAdapter reads a CSV export as one table group. The joined cell text is
// also exposed as the document text so labeled metric extraction works on
// exports that carry "Metric,Value" style rows.
type CSVAdapter struct{}

func (a *CSVAdapter) CanHandle(path string) bool {
	return constants.NormalizeExt(filepath.Ext(path)) == "csv"
}

func (a *CSVAdapter) Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}

	var text strings.Builder
	for _, row := range records {
		text.WriteString(strings.Join(row, " "))
		text.WriteString("\n")
	}

	var tables [][][]string
	if len(records) > 0 {
		tables = [][][]string{records}
	}

	return &Document{
		Text:     text.String(),
		Tables:   tables,
		Filename: filepath.Base(path),
		Source:   constants.SourceCSV,
	}, nil
}
