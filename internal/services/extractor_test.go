package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF assembles a minimal single-page PDF around the given content
// stream ops, with the cross-reference offsets computed from the buffer.
func writePDF(t *testing.T, path, contentStream string) {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(contentStream), contentStream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	extractor := NewTextExtractor("eng")

	for _, ext := range []string{".docx", ".txt", ".gif", ".zip", ""} {
		_, err := extractor.ExtractText("/tmp/whatever"+ext, ext)
		require.Error(t, err, "extension %q", ext)

		var formatErr *UnsupportedFormatError
		require.ErrorAs(t, err, &formatErr, "extension %q", ext)
		assert.Equal(t, ext, formatErr.Extension)
	}
}

func TestExtractText_SupportedExtensionsPassDispatch(t *testing.T) {
	extractor := NewTextExtractor("eng")
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	// A supported extension on a missing file fails extraction, never
	// format validation.
	_, err := extractor.ExtractText(missing, ".pdf")
	require.Error(t, err)

	var formatErr *UnsupportedFormatError
	assert.NotErrorAs(t, err, &formatErr)

	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestExtractText_ExtensionNormalization(t *testing.T) {
	extractor := NewTextExtractor("eng")
	missing := filepath.Join(t.TempDir(), "missing.PDF")

	// Dotted, undotted and upper-case spellings dispatch the same way
	for _, ext := range []string{".pdf", "pdf", ".PDF", "PDF"} {
		_, err := extractor.ExtractText(missing, ext)
		require.Error(t, err)

		var extractErr *ExtractionError
		assert.ErrorAs(t, err, &extractErr, "extension %q", ext)
	}
}

func TestExtractText_PDFTextLayer(t *testing.T) {
	extractor := NewTextExtractor("eng")

	path := filepath.Join(t.TempDir(), "profile.pdf")
	writePDF(t, path, "BT /F1 12 Tf 72 720 Td (Jane Smith, Backend Engineer) Tj ET")

	text, err := extractor.ExtractText(path, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith, Backend Engineer", text)
}

func TestExtractText_PDFWithoutTextLayer(t *testing.T) {
	extractor := NewTextExtractor("eng")

	// A scanned page draws graphics but shows no text. That is a valid
	// empty result, not an extraction failure.
	path := filepath.Join(t.TempDir(), "scanned.pdf")
	writePDF(t, path, "0 0 612 792 re f")

	text, err := extractor.ExtractText(path, ".pdf")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	extractor := NewTextExtractor("eng")

	path := filepath.Join(t.TempDir(), "broken.pdf")
	writeFile(t, path, "this is not a pdf")

	_, err := extractor.ExtractText(path, ".pdf")
	require.Error(t, err)

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, path, extractErr.Path)
}
