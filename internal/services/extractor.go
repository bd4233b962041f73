package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

type TextExtractor interface {
	ExtractText(filePath string, extension string) (string, error)
}

type textExtractor struct {
	ocrLanguage string
}

func NewTextExtractor(ocrLanguage string) TextExtractor {
	return &textExtractor{ocrLanguage: ocrLanguage}
}

// ExtractText returns all recoverable text from the file at filePath.
// PDFs are read through the embedded text layer; a PDF without one yields
// an empty string, not an error. Images go through OCR. Exactly one
// attempt per file, no retries.
func (t *textExtractor) ExtractText(filePath string, extension string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "pdf":
		return t.extractPDF(filePath)
	case "png", "jpg", "jpeg":
		return t.extractImage(filePath)
	default:
		return "", &UnsupportedFormatError{Extension: extension}
	}
}

func (t *textExtractor) extractPDF(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", &ExtractionError{Path: filePath, Err: fmt.Errorf("file does not exist")}
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", &ExtractionError{Path: filePath, Err: err}
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	// A scanned PDF with no text layer is an empty result, not a failure.
	return strings.TrimSpace(textBuilder.String()), nil
}

func (t *textExtractor) extractImage(filePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.ocrLanguage); err != nil {
		return "", &ExtractionError{Path: filePath, Err: fmt.Errorf("failed to set OCR language: %w", err)}
	}

	if err := client.SetImage(filePath); err != nil {
		return "", &ExtractionError{Path: filePath, Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &ExtractionError{Path: filePath, Err: err}
	}

	return strings.TrimSpace(text), nil
}
