package merge

import (
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/regionocr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestMerge_DecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		ai         fields.AIFields
		ocr        regionocr.Result
		want       Field
		wantReview bool
	}{
		{
			name: "both agree yields high confidence",
			ai:   fields.AIFields{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"},
			ocr:  regionocr.Result{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"},
			want: Field{Value: "CU (02/19)", Source: SourceBoth, Confidence: ConfidenceHigh},
		},
		{
			name:       "disagreement prefers ai value at low confidence",
			ai:         fields.AIFields{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"},
			ocr:        regionocr.Result{ReportForm: "AS (03/20)", SurveyReportNo: "R-001"},
			want:       Field{Value: "CU (02/19)", Source: SourceDocumentAI, Confidence: ConfidenceLow},
			wantReview: true,
		},
		{
			name: "ai only yields medium confidence",
			ai:   fields.AIFields{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"},
			ocr:  regionocr.Result{SurveyReportNo: "R-001"},
			want: Field{Value: "CU (02/19)", Source: SourceDocumentAI, Confidence: ConfidenceMedium},
		},
		{
			name: "ocr only yields medium confidence",
			ai:   fields.AIFields{SurveyReportNo: "R-001"},
			ocr:  regionocr.Result{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"},
			want: Field{Value: "CU (02/19)", Source: SourceOCR, Confidence: ConfidenceMedium},
		},
		{
			name:       "neither yields none",
			ai:         fields.AIFields{SurveyReportNo: "R-001"},
			ocr:        regionocr.Result{SurveyReportNo: "R-001"},
			want:       Field{Source: SourceNone, Confidence: ConfidenceNone},
			wantReview: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Merge(tt.ai, tt.ocr, quietLogger())
			if rec.ReportForm != tt.want {
				t.Errorf("ReportForm = %+v, want %+v", rec.ReportForm, tt.want)
			}
			if rec.NeedsManualReview != tt.wantReview {
				t.Errorf("NeedsManualReview = %v, want %v", rec.NeedsManualReview, tt.wantReview)
			}
		})
	}
}

func TestMerge_CaseInsensitiveAgreement(t *testing.T) {
	ai := fields.AIFields{ReportForm: "cu (02/19)", SurveyReportNo: "r-001"}
	ocr := regionocr.Result{ReportForm: "CU (02/19)", SurveyReportNo: "R-001"}

	rec := Merge(ai, ocr, quietLogger())

	if rec.ReportForm.Confidence != ConfidenceHigh || rec.ReportForm.Source != SourceBoth {
		t.Errorf("ReportForm = %+v, want high/both", rec.ReportForm)
	}
	// The AI casing is kept.
	if rec.ReportForm.Value != "cu (02/19)" {
		t.Errorf("Value = %q, want ai casing", rec.ReportForm.Value)
	}
	if rec.NeedsManualReview {
		t.Error("NeedsManualReview = true, want false")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	ai := fields.AIFields{ReportForm: "CU (02/19)"}
	ocr := regionocr.Result{SurveyReportNo: "R-001", Attempted: true, OCRSuccess: true}

	a := Merge(ai, ocr, quietLogger())
	b := Merge(ai, ocr, quietLogger())

	if !reflect.DeepEqual(a, b) {
		t.Errorf("merge not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestMerge_OCRAttemptedPropagates(t *testing.T) {
	rec := Merge(fields.AIFields{}, regionocr.Result{Attempted: true}, quietLogger())
	if !rec.OCRAttempted {
		t.Error("OCRAttempted = false, want true")
	}

	rec = Merge(fields.AIFields{}, regionocr.Result{}, quietLogger())
	if rec.OCRAttempted {
		t.Error("OCRAttempted = true, want false")
	}
}
