package extract

import "fmt"

// UnsupportedFormatError indicates the caller declared a document format
// outside the recognized set. The request is rejected before parsing.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %q (expected plain, pdf or docx)", e.Format)
}

// ExtractionError indicates the decoder could not recover any text from the
// document, e.g. a corrupted file or a scanned-image-only PDF with no
// embedded text layer.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s document: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
