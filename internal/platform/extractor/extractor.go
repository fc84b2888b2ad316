// Package extractor turns an opaque resume blob into plain text for the
// screening orchestrator. PDF and modern word-processing documents are
// supported; legacy binary .doc files are explicitly rejected as
// unsupported.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobber-ats/core/internal/platform/apperr"
)

// TextExtractor converts a resume blob's raw bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// Dispatcher routes extraction to the PDF or DOCX backend by file
// extension and rejects legacy .doc files outright.
type Dispatcher struct {
	pdf  TextExtractor
	docx TextExtractor
}

func NewDispatcher(pdf, docx TextExtractor) *Dispatcher {
	return &Dispatcher{pdf: pdf, docx: docx}
}

func (d *Dispatcher) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filename[strings.LastIndex(filename, ".")+1:])
	switch ext {
	case "pdf":
		return d.pdf.Extract(ctx, filename, data)
	case "docx":
		return d.docx.Extract(ctx, filename, data)
	case "doc":
		return "", apperr.Validation("legacy .doc resumes are not supported, upload PDF or DOCX")
	default:
		return "", apperr.Validation(fmt.Sprintf("unsupported resume format %q", ext))
	}
}
