// Package pdftext extracts plain text from PDF documents and cuts keyword
// snippets out of it.
package pdftext

import (
	"bytes"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// Extractor turns raw PDF bytes into plain text. Collectors that need it
// receive one at construction time; a nil Extractor means the capability is
// unavailable and the collector refuses to run.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor implements Extractor with a pure-Go PDF parser.
type PDFExtractor struct{}

// NewExtractor returns the default PDF text extractor.
func NewExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText concatenates the plain text of all pages.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", eris.Wrap(err, "pdftext: open document")
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", eris.Wrap(err, "pdftext: extract text")
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", eris.Wrap(err, "pdftext: read text")
	}
	return buf.String(), nil
}
