// Package regionocr runs targeted OCR over the header and footer bands of a
// PDF page to recover the report form code and report number printed in
// document boilerplate.
package regionocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Defaults for the targeted OCR stage.
const (
	DefaultDPI           = 300
	DefaultHeaderPercent = 0.15
	DefaultFooterPercent = 0.15
	DefaultFormMaxLen    = 50
	DefaultReportNoMax   = 30
)

// Config tunes the region OCR stage.
type Config struct {
	DPI            int
	HeaderPercent  float64
	FooterPercent  float64
	FormMaxLen     int
	ReportNoMaxLen int
	Language       string // tesseract language, default "eng"
	Pdftoppm       string // binary name or absolute path
	Tesseract      string // binary name or absolute path, used for the availability probe
}

// Result is the outcome of one targeted OCR pass. Every field is
// independently optional: an empty ReportForm is a valid outcome, not an
// error. OCR failure is reported in OCRError and never raised.
type Result struct {
	ReportForm     string  `json:"report_form,omitempty"`
	SurveyReportNo string  `json:"survey_report_no,omitempty"`
	HeaderText     string  `json:"header_text,omitempty"`
	FooterText     string  `json:"footer_text,omitempty"`
	MeanConfidence float32 `json:"mean_confidence,omitempty"`
	Attempted      bool    `json:"attempted"`
	OCRSuccess     bool    `json:"ocr_success"`
	OCRError       string  `json:"ocr_error,omitempty"`
}

// Processor rasterizes a page and OCRs its header/footer bands. Construct
// with NewProcessor; the availability probe runs once there and the
// instance is immutable afterwards.
type Processor struct {
	cfg    Config
	runner Runner
	engine Engine
	logger *slog.Logger

	available   bool
	unavailable string // reason, when available is false

	// pageCount is a seam for tests; defaults to pdfcpu.
	pageCount func(data []byte) (int, error)
}

// NewProcessor builds a Processor and probes for pdftoppm and tesseract.
// A missing engine does not fail construction: every subsequent call
// reports the problem through Result.OCRError instead.
func NewProcessor(cfg Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	if cfg.HeaderPercent <= 0 || cfg.HeaderPercent >= 1 {
		cfg.HeaderPercent = DefaultHeaderPercent
	}
	if cfg.FooterPercent <= 0 || cfg.FooterPercent >= 1 {
		cfg.FooterPercent = DefaultFooterPercent
	}
	if cfg.FormMaxLen <= 0 {
		cfg.FormMaxLen = DefaultFormMaxLen
	}
	if cfg.ReportNoMaxLen <= 0 {
		cfg.ReportNoMaxLen = DefaultReportNoMax
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}

	p := &Processor{
		cfg:       cfg,
		runner:    execRunner{logger: logger},
		engine:    tesseractEngine{lang: cfg.Language},
		logger:    logger,
		available: true,
		pageCount: pdfPageCount,
	}

	if _, err := exec.LookPath(cfg.Pdftoppm); err != nil {
		p.available = false
		p.unavailable = fmt.Sprintf("pdf-to-image converter not found: %v", err)
	} else if _, err := exec.LookPath(cfg.Tesseract); err != nil {
		p.available = false
		p.unavailable = fmt.Sprintf("ocr engine not found: %v", err)
	}

	if !p.available {
		logger.Warn("region ocr unavailable", "reason", p.unavailable)
	}

	return p
}

// Available reports whether the OCR engine and converter were found.
func (p *Processor) Available() bool {
	return p.available
}

// ExtractFromPDF OCRs the header/footer bands of one page (0-based pageNum)
// and applies the field pattern cascades. It never panics and never returns
// an error out-of-band: all failure modes land in Result.OCRError.
func (p *Processor) ExtractFromPDF(ctx context.Context, data []byte, pageNum int) (res Result) {
	res.Attempted = true

	defer func() {
		if rec := recover(); rec != nil {
			res.OCRSuccess = false
			res.OCRError = fmt.Sprintf("region ocr panic: %v", rec)
			p.logger.Error("region ocr panic", "panic", rec)
		}
	}()

	if !p.available {
		res.OCRError = p.unavailable
		return res
	}
	if len(data) == 0 {
		res.OCRError = "empty document"
		return res
	}

	pages, err := p.pageCount(data)
	if err != nil {
		res.OCRError = fmt.Sprintf("invalid pdf: %v", err)
		return res
	}
	if pageNum < 0 || pageNum >= pages {
		res.OCRError = fmt.Sprintf("page %d out of range (document has %d)", pageNum, pages)
		return res
	}

	pageImg, err := renderPage(ctx, p.runner, p.cfg.Pdftoppm, data, pageNum+1, p.cfg.DPI)
	if err != nil {
		res.OCRError = fmt.Sprintf("rasterize page: %v", err)
		return res
	}

	img, err := png.Decode(bytes.NewReader(pageImg))
	if err != nil {
		res.OCRError = fmt.Sprintf("decode page image: %v", err)
		return res
	}

	header, footer := cropBands(img, p.cfg.HeaderPercent, p.cfg.FooterPercent)

	var confSum float32
	var confN int
	res.HeaderText, confSum, confN = p.recognizeBand(header, "header", confSum, confN)
	res.FooterText, confSum, confN = p.recognizeBand(footer, "footer", confSum, confN)
	if confN > 0 {
		res.MeanConfidence = confSum / float32(confN)
	}

	combined := res.HeaderText + "\n" + res.FooterText

	var formPattern, noPattern string
	res.ReportForm, formPattern = ExtractField(FormPatterns, combined, p.cfg.FormMaxLen)
	res.SurveyReportNo, noPattern = ExtractField(ReportNoPatterns, combined, p.cfg.ReportNoMaxLen)

	res.OCRSuccess = true
	p.logger.Debug("region ocr complete",
		"page", pageNum,
		"report_form", res.ReportForm,
		"form_pattern", formPattern,
		"survey_report_no", res.SurveyReportNo,
		"no_pattern", noPattern,
		"mean_confidence", res.MeanConfidence)

	return res
}

// recognizeBand preprocesses and OCRs one band. Band failures degrade to
// empty text; they do not fail the pass.
func (p *Processor) recognizeBand(band image.Image, name string, confSum float32, confN int) (string, float32, int) {
	prepared, err := prepareBand(band)
	if err != nil {
		p.logger.Warn("band preprocess failed", "band", name, "error", err)
		return "", confSum, confN
	}

	text, conf, err := p.engine.Recognize(prepared)
	if err != nil {
		p.logger.Warn("band ocr failed", "band", name, "error", err)
		return "", confSum, confN
	}
	if conf > 0 {
		confSum += conf
		confN++
	}
	return strings.TrimSpace(text), confSum, confN
}

// pdfPageCount asks pdfcpu for the page count, which doubles as a sanity
// check that the bytes really are a PDF before shelling out to poppler.
func pdfPageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), nil)
}
