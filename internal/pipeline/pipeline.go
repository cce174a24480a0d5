// Package pipeline wires the analysis stages together: text layer
// extraction, summary composition, AI field extraction, targeted region OCR
// and the final source merge.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/marintec/certscan/internal/aifields"
	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/merge"
	"github.com/marintec/certscan/internal/regionocr"
	"github.com/marintec/certscan/internal/summary"
	"github.com/marintec/certscan/internal/textlayer"
)

// Request is one document to analyze.
type Request struct {
	Data     []byte
	Filename string
	DocType  fields.DocumentType

	// DocumentAIText is OCR text supplied by an external full-page OCR
	// service, when available. It feeds the summary; the targeted region
	// OCR still runs regardless.
	DocumentAIText string
}

// Analysis is the complete result of one document run. Every stage fails
// soft, so an Analysis always exists even when every field came up empty.
type Analysis struct {
	RunID    string              `json:"run_id"`
	Filename string              `json:"filename"`
	DocType  fields.DocumentType `json:"document_type"`

	TextLayer textlayer.Result `json:"text_layer"`
	Summary   string           `json:"summary"`
	AIFields  fields.AIFields  `json:"ai_fields"`
	OCR       regionocr.Result `json:"region_ocr"`
	Merged    merge.Record     `json:"merged"`
}

// Analyzer owns the stage components. Construct once, reuse across
// documents; no per-request state lives here.
type Analyzer struct {
	Text   *textlayer.Extractor
	OCR    *regionocr.Processor
	AI     *aifields.Extractor
	Logger *slog.Logger
}

// Analyze runs the full pipeline for one document. Region OCR runs
// concurrently with the AI call since neither depends on the other.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Analysis {
	log := a.Logger
	if log == nil {
		log = slog.Default()
	}

	result := Analysis{
		RunID:    uuid.New().String(),
		Filename: req.Filename,
		DocType:  req.DocType,
	}
	log = log.With("run_id", result.RunID, "filename", req.Filename)

	result.TextLayer = a.Text.Extract(req.Data, req.Filename)
	log.Debug("text layer extracted",
		"has_text_layer", result.TextLayer.HasTextLayer,
		"char_count", result.TextLayer.CharCount,
		"pages", result.TextLayer.PageCount)

	result.Summary = summary.Compose(result.TextLayer, req.DocumentAIText, req.Filename, req.DocType)

	ocrDone := make(chan regionocr.Result, 1)
	go func() {
		ocrDone <- a.OCR.ExtractFromPDF(ctx, req.Data, 0)
	}()

	result.AIFields = a.AI.Extract(ctx, result.Summary, req.Filename, req.DocType)
	result.OCR = <-ocrDone

	result.Merged = merge.Merge(result.AIFields, result.OCR, log)

	log.Info("analysis complete",
		"needs_manual_review", result.Merged.NeedsManualReview,
		"report_form_confidence", result.Merged.ReportForm.Confidence,
		"survey_report_no_confidence", result.Merged.SurveyReportNo.Confidence)

	return result
}
