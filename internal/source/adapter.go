// Package source turns operational documents (PDF reports, CSV/XLSX exports)
// into the pipeline's input contract: a single text blob plus optional
// tabular row groups.
package source

import (
	"path/filepath"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/common"
)

// Document is the output contract of every adapter.
type Document struct {
	Text     string
	Tables   [][][]string // tables -> rows -> cells
	Filename string
	Source   constants.Source
}

// Adapter converts one file type to a Document.
type Adapter interface {
	// CanHandle reports whether this adapter understands the file extension.
	CanHandle(path string) bool
	// Read extracts the document's text and row groups.
	Read(path string) (*Document, error)
}

// Adapters returns the default adapter chain.
func Adapters() []Adapter {
	return []Adapter{
		&PDFAdapter{},
		&CSVAdapter{},
		&XLSXAdapter{},
	}
}

// ReadDocument picks the adapter for path and reads it.
func ReadDocument(path string) (*Document, error) {
	for _, a := range Adapters() {
		if a.CanHandle(path) {
			return a.Read(path)
		}
	}
	return nil, common.NewAppError("UNSUPPORTED_FILE",
		"no adapter for extension "+filepath.Ext(path), common.ErrUnsupported)
}
