// Package ingestion extracts plain text from uploaded resume documents.
// The rest of the system treats it as an opaque bytes-to-text producer.
package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText extracts the plain text of every page in the document.
// Pages that fail to decode are skipped rather than failing the whole
// document.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := CleanText(sb.String())
	if cleaned == "" {
		return "", fmt.Errorf("document contains no extractable text")
	}
	return cleaned, nil
}
