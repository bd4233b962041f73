package services

import "fmt"

// UnsupportedFormatError is returned for uploads outside the accepted
// extension set. User-correctable, maps to HTTP 400.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q (accepted: pdf, png, jpg, jpeg)", e.Extension)
}

// ExtractionError wraps a PDF-parse or OCR failure. Maps to HTTP 500.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// AnalysisUnavailableError is raised only after both configured LLM
// providers have failed for one logical request. Carries both underlying
// errors so neither failure is lost.
type AnalysisUnavailableError struct {
	PrimaryErr  error
	FallbackErr error
}

func (e *AnalysisUnavailableError) Error() string {
	return fmt.Sprintf("both AI providers are unavailable: claude: %v; openai: %v", e.PrimaryErr, e.FallbackErr)
}
