package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/marintec/certscan/internal/aifields"
	"github.com/marintec/certscan/internal/cliout"
	"github.com/marintec/certscan/internal/config"
	"github.com/marintec/certscan/internal/fields"
	"github.com/marintec/certscan/internal/pipeline"
	"github.com/marintec/certscan/internal/providers"
	"github.com/marintec/certscan/internal/regionocr"
	"github.com/marintec/certscan/internal/textlayer"
)

var (
	analyzeDocType string
	analyzeWorkers int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf> [file.pdf...]",
	Short: "Analyze maritime documents and extract merged fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		analyzer, err := buildAnalyzer(cfg, slog.Default())
		if err != nil {
			return err
		}

		docType := fields.ParseDocumentType(analyzeDocType)

		workers := analyzeWorkers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > len(args) {
			workers = len(args)
		}

		results := make([]any, len(args))
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup

		for i, path := range args {
			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				data, err := os.ReadFile(path)
				if err != nil {
					results[i] = map[string]string{
						"filename": path,
						"error":    err.Error(),
					}
					return
				}

				results[i] = analyzer.Analyze(cmd.Context(), pipeline.Request{
					Data:     data,
					Filename: filepath.Base(path),
					DocType:  docType,
				})
			}(i, path)
		}
		wg.Wait()

		if len(results) == 1 {
			return cliout.Output(results[0])
		}
		return cliout.Output(results)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(
		&analyzeDocType, "type", "survey_report", "document type: survey_report or certificate",
	)
	analyzeCmd.Flags().IntVar(
		&analyzeWorkers, "workers", 0, "max concurrent documents (default: number of CPUs)",
	)
}

// buildAnalyzer is the composition root: it wires the stage components from
// configuration.
func buildAnalyzer(cfg *config.Config, logger *slog.Logger) (*pipeline.Analyzer, error) {
	apiKey := cfg.ResolvedAPIKey()
	var client providers.LLMClient
	if apiKey != "" {
		client = providers.NewOpenAIClient(providers.OpenAIConfig{
			APIKey:     apiKey,
			Model:      cfg.LLM.Model,
			BaseURL:    cfg.LLM.BaseURL,
			MaxRetries: cfg.LLM.MaxRetries,
			Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		})
	} else {
		logger.Warn("no llm api key configured, ai extraction will be skipped")
	}

	analyzer := &pipeline.Analyzer{
		Text: textlayer.NewExtractor(cfg.Extraction.TextLayerThreshold, logger),
		OCR: regionocr.NewProcessor(regionocr.Config{
			DPI:            cfg.OCR.DPI,
			HeaderPercent:  cfg.OCR.HeaderPercent,
			FooterPercent:  cfg.OCR.FooterPercent,
			FormMaxLen:     cfg.OCR.FormMaxLen,
			ReportNoMaxLen: cfg.OCR.ReportNoMaxLen,
			Language:       cfg.OCR.Language,
			Pdftoppm:       cfg.OCR.Pdftoppm,
			Tesseract:      cfg.OCR.Tesseract,
		}, logger),
		AI: aifields.NewExtractor(client, aifields.Config{
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			Timeout:         time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
			MaxSummaryChars: cfg.Extraction.MaxSummaryChars,
		}, logger),
		Logger: logger,
	}
	return analyzer, nil
}

// setupLogging installs the default text logger at the requested level.
func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
}
