// Package summary renders extracted document text into the section-delimited
// plain-text form consumed by the AI field extractor. The section markers are
// a stable contract: prompt templates and debug tooling both key off them.
package summary

import (
	"fmt"
	"strings"

	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/textlayer"
)

// Section markers. Changing these breaks prompt parsing downstream.
const (
	textLayerHeader = "--- TEXT LAYER CONTENT ---"
	ocrHeader       = "--- DOCUMENT AI OCR CONTENT ---"
	endMarker       = "=== END OF DOCUMENT ==="

	noTextLayerPlaceholder = "[no text layer found]"
	noOCRPlaceholder       = "[no ocr content available]"
)

// Compose builds the summary document from the text layer result and any
// externally supplied OCR text. It never fails: malformed input degrades to
// a minimal fallback that concatenates whatever raw text is available.
func Compose(tl textlayer.Result, ocrText, filename string, docType fields.DocumentType) (out string) {
	defer func() {
		if recover() != nil {
			out = fallback(tl, ocrText, filename)
		}
	}()

	var b strings.Builder

	path := "slow path (ocr assisted)"
	if tl.HasTextLayer {
		path = "fast path (native text layer)"
	}

	fmt.Fprintf(&b, "DOCUMENT ANALYSIS SUMMARY\n")
	fmt.Fprintf(&b, "File: %s\n", filename)
	fmt.Fprintf(&b, "Document Type: %s\n", docType)
	fmt.Fprintf(&b, "Processing Path: %s\n", path)
	fmt.Fprintf(&b, "Pages: %d, Characters: %d\n\n", tl.PageCount, tl.CharCount)

	b.WriteString(textLayerHeader + "\n")
	if tl.HasTextLayer && strings.TrimSpace(tl.TextContent) != "" {
		b.WriteString(strings.TrimSpace(tl.TextContent))
	} else {
		b.WriteString(noTextLayerPlaceholder)
	}
	b.WriteString("\n\n")

	b.WriteString(ocrHeader + "\n")
	if strings.TrimSpace(ocrText) != "" {
		b.WriteString(strings.TrimSpace(ocrText))
	} else {
		b.WriteString(noOCRPlaceholder)
	}
	b.WriteString("\n\n")

	b.WriteString(endMarker + "\n")

	return b.String()
}

// fallback is the minimal variant used when normal composition panics on
// malformed input. It keeps the end marker so consumers can still find the
// document boundary.
func fallback(tl textlayer.Result, ocrText, filename string) string {
	var b strings.Builder
	b.WriteString("DOCUMENT ANALYSIS SUMMARY (Fallback Mode)\n")
	b.WriteString("File: " + filename + "\n\n")
	if tl.TextContent != "" {
		b.WriteString(tl.TextContent)
		b.WriteString("\n")
	}
	if ocrText != "" {
		b.WriteString(ocrText)
		b.WriteString("\n")
	}
	b.WriteString(endMarker + "\n")
	return b.String()
}
