// Package textlayer extracts the embedded text layer from PDF documents and
// classifies whether it is substantial enough to skip OCR.
package textlayer

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultThreshold is the character count at or above which a document is
// considered to have a usable text layer.
const DefaultThreshold = 400

// PageText is the extraction outcome for a single page. A failed page keeps
// CharCount 0 and records the failure in Error; it never aborts the document.
type PageText struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
	Error      string `json:"error,omitempty"`
}

// Result describes the text layer of a whole document.
type Result struct {
	PageCount    int        `json:"page_count"`
	TextContent  string     `json:"text_content"`
	CharCount    int        `json:"char_count"`
	HasTextLayer bool       `json:"has_text_layer"`
	Success      bool       `json:"success"`
	Error        string     `json:"error,omitempty"`
	Pages        []PageText `json:"pages,omitempty"`
}

// Extractor reads PDF text layers. The zero value is not usable; construct
// with NewExtractor.
type Extractor struct {
	threshold int
	logger    *slog.Logger
}

// NewExtractor creates an Extractor with the given sufficiency threshold.
// A threshold <= 0 falls back to DefaultThreshold.
func NewExtractor(threshold int, logger *slog.Logger) *Extractor {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{threshold: threshold, logger: logger}
}

// Extract pulls the text layer out of raw PDF bytes. Any input, including
// empty or corrupted data, yields a Result; failures are reported through
// Success and Error, never through a panic.
func (e *Extractor) Extract(data []byte, filename string) Result {
	if len(data) < 4 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return Result{
			Success: false,
			Error:   "not a PDF: missing %PDF header",
		}
	}

	reader, err := openReader(data)
	if err != nil {
		e.logger.Warn("pdf parse failed", "file", filename, "error", err)
		return Result{Success: false, Error: fmt.Sprintf("parse pdf: %v", err)}
	}

	numPages := reader.NumPage()
	pages := make([]PageText, 0, numPages)
	var content strings.Builder
	var rawChars int

	for i := 1; i <= numPages; i++ {
		pt := extractPage(reader, i)
		pages = append(pages, pt)
		rawChars += pt.CharCount

		content.WriteString(fmt.Sprintf("--- Page %d ---\n", i))
		if pt.Text != "" {
			content.WriteString(pt.Text)
			content.WriteString("\n")
		}
		if pt.Error != "" {
			e.logger.Debug("page text extraction failed",
				"file", filename, "page", i, "error", pt.Error)
		}
	}

	res := Result{
		PageCount:    numPages,
		TextContent:  content.String(),
		CharCount:    rawChars,
		HasTextLayer: e.sufficient(rawChars),
		Success:      true,
		Pages:        pages,
	}

	e.logger.Debug("text layer extracted",
		"file", filename,
		"pages", res.PageCount,
		"chars", res.CharCount,
		"has_text_layer", res.HasTextLayer)

	return res
}

// HasTextLayer is the quick-check variant: same extraction, but only the
// routing decision and the concatenated text are returned.
func (e *Extractor) HasTextLayer(data []byte) (bool, string) {
	res := e.Extract(data, "")
	return res.HasTextLayer, res.TextContent
}

// Threshold returns the configured sufficiency threshold.
func (e *Extractor) Threshold() int {
	return e.threshold
}

// sufficient implements the routing decision: char counts at or above the
// threshold take the fast path. The bound is inclusive.
func (e *Extractor) sufficient(charCount int) bool {
	return charCount >= e.threshold
}

// openReader parses the PDF, converting parser panics into errors. The
// underlying library faults on some malformed cross-reference tables.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("pdf reader panic: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// extractPage reads one page's plain text, isolating failures to that page.
func extractPage(reader *pdf.Reader, pageNum int) (pt PageText) {
	pt = PageText{PageNumber: pageNum}
	defer func() {
		if rec := recover(); rec != nil {
			pt.Text = ""
			pt.CharCount = 0
			pt.Error = fmt.Sprintf("page panic: %v", rec)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		pt.Error = "page object is null"
		return pt
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		pt.Error = err.Error()
		return pt
	}

	pt.Text = strings.TrimSpace(text)
	pt.CharCount = len(pt.Text)
	return pt
}
