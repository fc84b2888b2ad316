package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
)

// DOCXExtractor extracts plain text from a modern word-processing
// document resume.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor { return &DOCXExtractor{} }

func (e *DOCXExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	doc, err := godocx.OpenBytes(data)
	if err != nil {
		return "", fmt.Errorf("open docx %s: %w", filename, err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Document.Body.Paragraphs() {
		sb.WriteString(para.Text())
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
