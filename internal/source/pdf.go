package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kofiasare/hotelmetrics/constants"
)

// PDFAdapter extracts plain text from PDF reports. Embedded tables come out
// as flowed text here; the table-row extractor only sees explicit row groups,
// which PDFs do not provide.
type PDFAdapter struct{}

func (a *PDFAdapter) CanHandle(path string) bool {
	return constants.NormalizeExt(filepath.Ext(path)) == "pdf"
}

func (a *PDFAdapter) Read(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	var content strings.Builder
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		p := r.Page(pageNum)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		content.WriteString(text)
		content.WriteString("\n")
	}

	return &Document{
		Text:     content.String(),
		Filename: filepath.Base(path),
		Source:   constants.SourcePDF,
	}, nil
}
