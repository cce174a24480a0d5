// Package aifields extracts structured document fields from summary text via
// an LLM, normalizes them against the field policies, and falls back to
// filename-derived values where the model came up empty.
package aifields

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/providers"
)

// Config tunes the AI extraction stage.
type Config struct {
	Model           string
	Temperature     float64
	Timeout         time.Duration
	MaxSummaryChars int
}

// Extractor drives the LLM call for one document. It fails soft: any
// provider error, parse failure or validation problem degrades to an empty
// field set with a logged diagnostic, never an error to the caller.
type Extractor struct {
	client providers.LLMClient
	cfg    Config
	logger *slog.Logger
}

// NewExtractor builds an Extractor around an LLM client.
func NewExtractor(client providers.LLMClient, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxSummaryChars == 0 {
		cfg.MaxSummaryChars = 24000
	}
	return &Extractor{client: client, cfg: cfg, logger: logger}
}

// Extract runs the full AI field extraction for one document. The filename
// fallback for report_form applies even when the AI call fails outright, so
// a dead provider still yields whatever the filename encodes.
func (e *Extractor) Extract(ctx context.Context, summaryText, filename string, docType fields.DocumentType) fields.AIFields {
	requestID := uuid.New().String()
	log := e.logger.With("request_id", requestID, "filename", filename)

	f := e.callModel(ctx, summaryText, filename, docType, requestID, log)

	applyFieldPolicies(&f)
	if f.ReportForm == "" {
		if code := formCodeFromFilename(filename); code != "" {
			log.Debug("report form filled from filename", "report_form", code)
			f.ReportForm = code
		}
	}

	return f
}

func (e *Extractor) callModel(ctx context.Context, summaryText, filename string, docType fields.DocumentType, requestID string, log *slog.Logger) fields.AIFields {
	if e.client == nil {
		log.Warn("no llm client configured, skipping ai extraction")
		return fields.AIFields{}
	}

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: buildSystemPrompt(docType)},
			{Role: "user", Content: buildUserPrompt(summaryText, filename, e.cfg.MaxSummaryChars)},
		},
		Model:       e.cfg.Model,
		Temperature: e.cfg.Temperature,
		Timeout:     e.cfg.Timeout,
		RequestID:   requestID,
	}

	result, err := e.client.Chat(ctx, req)
	if err != nil {
		log.Warn("ai extraction call failed", "error", err)
		return fields.AIFields{}
	}

	parsed, err := providers.ParseJSON(result.Content)
	if err != nil {
		log.Warn("ai response was not json", "error", err, "content_len", len(result.Content))
		return fields.AIFields{}
	}

	// Schema violations are logged but not fatal: decode ignores anything
	// unusable anyway.
	if err := providers.ValidateJSON(fieldSchema(docType), parsed); err != nil {
		log.Warn("ai response failed schema validation", "error", err)
	}

	f, err := decodeFields(parsed)
	if err != nil {
		log.Warn("ai response decode failed", "error", err)
		return fields.AIFields{}
	}

	log.Debug("ai extraction complete",
		"provider", result.Provider,
		"model", result.ModelUsed,
		"attempts", result.Attempts,
		"total_tokens", result.TotalTokens,
		"empty", f.IsEmpty())

	return f
}
