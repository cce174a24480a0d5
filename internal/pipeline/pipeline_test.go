package pipeline

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/marintec/certscan/internal/aifields"
	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/merge"
	"github.com/marintec/certscan/internal/providers"
	"github.com/marintec/certscan/internal/regionocr"
	"github.com/marintec/certscan/internal/textlayer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testAnalyzer builds an Analyzer with a mock LLM and an OCR processor whose
// engine binaries do not exist, so OCR degrades to a soft failure.
func testAnalyzer(t *testing.T, mock *providers.MockClient) *Analyzer {
	t.Helper()
	log := testLogger()
	return &Analyzer{
		Text:   textlayer.NewExtractor(0, log),
		OCR:    regionocr.NewProcessor(regionocr.Config{Pdftoppm: "certscan-no-such-binary"}, log),
		AI:     aifields.NewExtractor(mock, aifields.Config{Model: "gpt-4o-mini"}, log),
		Logger: log,
	}
}

func TestAnalyze_NonPDFStillCompletes(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"report_form":"CU (02/19)","ship_name":"MV OCEAN STAR"}`
	a := testAnalyzer(t, mock)

	res := a.Analyze(context.Background(), Request{
		Data:     []byte("this is not a pdf"),
		Filename: "broken.pdf",
		DocType:  fields.DocumentTypeSurveyReport,
	})

	if res.RunID == "" {
		t.Error("RunID not set")
	}
	if res.TextLayer.Success {
		t.Error("TextLayer.Success = true for non-pdf input")
	}
	if res.Summary == "" {
		t.Error("summary missing")
	}
	if res.AIFields.ReportForm != "CU (02/19)" {
		t.Errorf("ReportForm = %q, want CU (02/19)", res.AIFields.ReportForm)
	}
	if res.OCR.OCRSuccess {
		t.Error("OCRSuccess = true with unavailable engine")
	}
	if !res.OCR.Attempted {
		t.Error("OCR.Attempted = false, want true")
	}
	// AI-only value merges at medium.
	if res.Merged.ReportForm.Confidence != merge.ConfidenceMedium {
		t.Errorf("ReportForm confidence = %v, want medium", res.Merged.ReportForm.Confidence)
	}
	if res.Merged.SurveyReportNo.Confidence != merge.ConfidenceNone {
		t.Errorf("SurveyReportNo confidence = %v, want none", res.Merged.SurveyReportNo.Confidence)
	}
	if !res.Merged.NeedsManualReview {
		t.Error("NeedsManualReview = false, want true")
	}
}

func TestAnalyze_SummaryCarriesDocumentAIText(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{}`
	a := testAnalyzer(t, mock)

	res := a.Analyze(context.Background(), Request{
		Data:           []byte("not a pdf"),
		Filename:       "scan.pdf",
		DocType:        fields.DocumentTypeCertificate,
		DocumentAIText: "Form No.: CU (02/19)\nReport No.: R-001",
	})

	if !strings.Contains(res.Summary, "Form No.: CU (02/19)") {
		t.Errorf("summary missing document ai text:\n%s", res.Summary)
	}
}

func TestAnalyze_ProviderFailureStillYieldsRecord(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ShouldFail = true
	a := testAnalyzer(t, mock)

	res := a.Analyze(context.Background(), Request{
		Data:     []byte("not a pdf"),
		Filename: "CG (02-19).pdf",
		DocType:  fields.DocumentTypeSurveyReport,
	})

	// The filename fallback survives a dead provider.
	if res.AIFields.ReportForm != "CG (02-19)" {
		t.Errorf("ReportForm = %q, want CG (02-19)", res.AIFields.ReportForm)
	}
	if res.Merged.ReportForm.Source != merge.SourceDocumentAI {
		t.Errorf("source = %v, want document_ai", res.Merged.ReportForm.Source)
	}
	if !res.Merged.NeedsManualReview {
		t.Error("NeedsManualReview = false, want true")
	}
}
