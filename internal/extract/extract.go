// Package extract normalizes heterogeneous input documents (plain text,
// PDF, DOCX) into a canonical UTF-8 text stream. The transformation is pure:
// no state is kept between calls.
package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/AntoScher/resume-analyzer/internal/types"
)

// Extract decodes the raw document bytes according to the declared format
// and returns the canonical document. It fails with *UnsupportedFormatError
// for an unrecognized format and *ExtractionError when no text is
// recoverable.
func Extract(raw []byte, format types.SourceFormat) (*types.CanonicalDocument, error) {
	var (
		text string
		err  error
	)

	switch format {
	case types.FormatPlain:
		text, err = decodePlain(raw)
	case types.FormatPDF:
		text, err = decodePDF(raw)
	case types.FormatDOCX:
		text, err = decodeDOCX(raw)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return nil, err
	}

	canonical := Canonicalize(text)
	if canonical == "" {
		return nil, &ExtractionError{Format: string(format), Message: "no text recovered from document"}
	}

	return &types.CanonicalDocument{Text: canonical, SourceFormat: format}, nil
}

func decodePlain(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		// Replace invalid sequences rather than rejecting; resumes arrive
		// in every encoding imaginable.
		return strings.ToValidUTF8(string(raw), "�"), nil
	}
	return string(raw), nil
}

func decodePDF(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to open PDF", Cause: err}
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page degrades to a shorter document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func decodeDOCX(raw []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Message: "failed to open DOCX", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	return stripDocxTags(content), nil
}

// stripDocxTags converts the raw document XML returned by the docx library
// into plain text: paragraph and line-break elements become newlines, all
// remaining tags are dropped.
func stripDocxTags(content string) string {
	replacer := strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:br>", "\n",
		"<w:tab/>", " ",
	)
	content = replacer.Replace(content)

	var builder strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}

	text := builder.String()
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&apos;", "'")
	return text
}

// Canonicalize normalizes extracted text: CRLF to LF, intra-line whitespace
// collapsed to single spaces, lines trimmed, and runs of blank lines
// collapsed to a single blank line so paragraph boundaries survive for
// section segmentation.
func Canonicalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	canonical := make([]string, 0, len(lines))
	blankPending := false
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			blankPending = len(canonical) > 0
			continue
		}
		if blankPending {
			canonical = append(canonical, "")
			blankPending = false
		}
		canonical = append(canonical, strings.Join(fields, " "))
	}

	return strings.Join(canonical, "\n")
}
