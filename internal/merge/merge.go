// Package merge reconciles AI-extracted and OCR-extracted field values into
// a final value, a provenance tag and a confidence tier, and flags records
// that need a human look.
package merge

import (
	"log/slog"
	"strings"

	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/regionocr"
)

// Source tags where a merged value came from.
type Source string

const (
	SourceNone       Source = "none"
	SourceDocumentAI Source = "document_ai"
	SourceOCR        Source = "ocr"
	SourceBoth       Source = "both"
)

// Confidence is the tier derived from source agreement.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Field is one reconciled field value.
type Field struct {
	Value      string     `json:"value,omitempty"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
}

// Record is the final merged output for the two OCR-comparable fields.
type Record struct {
	ReportForm        Field `json:"report_form"`
	SurveyReportNo    Field `json:"survey_report_no"`
	NeedsManualReview bool  `json:"needs_manual_review"`
	OCRAttempted      bool  `json:"ocr_attempted"`
}

// Merge reconciles the AI and OCR results field by field. It is a pure
// function of its inputs: identical inputs always produce identical output.
func Merge(ai fields.AIFields, ocr regionocr.Result, logger *slog.Logger) Record {
	if logger == nil {
		logger = slog.Default()
	}

	rec := Record{
		ReportForm:     mergeField("report_form", ai.ReportForm, ocr.ReportForm, logger),
		SurveyReportNo: mergeField("survey_report_no", ai.SurveyReportNo, ocr.SurveyReportNo, logger),
		OCRAttempted:   ocr.Attempted,
	}

	rec.NeedsManualReview = lowOrNone(rec.ReportForm) || lowOrNone(rec.SurveyReportNo)
	return rec
}

// mergeField applies the four-row decision table: agree, disagree, exactly
// one present, neither present. On disagreement the AI value wins but the
// record drops to low confidence.
func mergeField(name, aiValue, ocrValue string, logger *slog.Logger) Field {
	aiValue = strings.TrimSpace(aiValue)
	ocrValue = strings.TrimSpace(ocrValue)

	switch {
	case aiValue != "" && ocrValue != "":
		if strings.EqualFold(aiValue, ocrValue) {
			return Field{Value: aiValue, Source: SourceBoth, Confidence: ConfidenceHigh}
		}
		logger.Warn("field sources disagree",
			"field", name,
			"ai_value", aiValue,
			"ocr_value", ocrValue)
		return Field{Value: aiValue, Source: SourceDocumentAI, Confidence: ConfidenceLow}
	case aiValue != "":
		return Field{Value: aiValue, Source: SourceDocumentAI, Confidence: ConfidenceMedium}
	case ocrValue != "":
		return Field{Value: ocrValue, Source: SourceOCR, Confidence: ConfidenceMedium}
	default:
		return Field{Source: SourceNone, Confidence: ConfidenceNone}
	}
}

func lowOrNone(f Field) bool {
	return f.Confidence == ConfidenceLow || f.Confidence == ConfidenceNone
}
