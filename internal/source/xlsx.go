package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kofiasare/hotelmetrics/constants"
)

// XLSXAdapter reads every sheet of a workbook as one table group.
type XLSXAdapter struct{}

func (a *XLSXAdapter) CanHandle(path string) bool {
	return constants.NormalizeExt(filepath.Ext(path)) == "xlsx"
}

func (a *XLSXAdapter) Read(path string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	var tables [][][]string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		text.WriteString(sheet)
		text.WriteString("\n")
		for _, row := range rows {
			text.WriteString(strings.Join(row, " "))
			text.WriteString("\n")
		}
		tables = append(tables, rows)
	}

	return &Document{
		Text:     text.String(),
		Tables:   tables,
		Filename: filepath.Base(path),
		Source:   constants.SourceXLSX,
	}, nil
}
