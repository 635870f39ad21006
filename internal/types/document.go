// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path"
	"strings"
)

// SourceFormat identifies the format a resume document was uploaded in.
type SourceFormat string

// Recognized source formats.
const (
	FormatPlain SourceFormat = "plain"
	FormatPDF   SourceFormat = "pdf"
	FormatDOCX  SourceFormat = "docx"
)

// ParseSourceFormat maps a format name, a file extension, or a filename to
// a SourceFormat. The second return value is false when the name is not
// recognized.
func ParseSourceFormat(name string) (SourceFormat, bool) {
	name = strings.TrimSpace(name)
	if ext := path.Ext(name); ext != "" {
		name = ext
	}
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "plain", "txt", "text":
		return FormatPlain, true
	case "pdf":
		return FormatPDF, true
	case "docx":
		return FormatDOCX, true
	default:
		return "", false
	}
}

// CanonicalDocument is the normalized text form of an uploaded document.
// It is produced once by the extractor and consumed read-only by every
// later stage: intra-line whitespace is collapsed to single spaces and
// paragraph boundaries are preserved as single blank lines.
type CanonicalDocument struct {
	Text         string       `json:"text"`
	SourceFormat SourceFormat `json:"source_format"`
}
