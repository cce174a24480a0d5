package config

// Config holds certscan configuration.
type Config struct {
	Extraction ExtractionCfg `mapstructure:"extraction" yaml:"extraction"`
	OCR        OCRCfg        `mapstructure:"ocr" yaml:"ocr"`
	LLM        LLMCfg        `mapstructure:"llm" yaml:"llm"`
}

// ExtractionCfg tunes the text layer stage and summary composition.
type ExtractionCfg struct {
	// TextLayerThreshold is the character count at or above which a PDF is
	// considered to have a usable native text layer.
	TextLayerThreshold int `mapstructure:"text_layer_threshold" yaml:"text_layer_threshold"`
	// MaxSummaryChars caps summary text passed to the LLM prompt.
	MaxSummaryChars int `mapstructure:"max_summary_chars" yaml:"max_summary_chars"`
}

// OCRCfg tunes the targeted header/footer OCR stage.
type OCRCfg struct {
	DPI            int     `mapstructure:"dpi" yaml:"dpi"`
	HeaderPercent  float64 `mapstructure:"header_percent" yaml:"header_percent"`
	FooterPercent  float64 `mapstructure:"footer_percent" yaml:"footer_percent"`
	FormMaxLen     int     `mapstructure:"form_max_len" yaml:"form_max_len"`
	ReportNoMaxLen int     `mapstructure:"report_no_max_len" yaml:"report_no_max_len"`
	Language       string  `mapstructure:"language" yaml:"language"`
	Pdftoppm       string  `mapstructure:"pdftoppm" yaml:"pdftoppm"`
	Tesseract      string  `mapstructure:"tesseract" yaml:"tesseract"`
}

// LLMCfg configures the AI field extraction provider.
type LLMCfg struct {
	Model          string  `mapstructure:"model" yaml:"model"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionCfg{
			TextLayerThreshold: 400,
			MaxSummaryChars:    24000,
		},
		OCR: OCRCfg{
			DPI:            300,
			HeaderPercent:  0.15,
			FooterPercent:  0.15,
			FormMaxLen:     50,
			ReportNoMaxLen: 30,
			Language:       "eng",
			Pdftoppm:       "pdftoppm",
			Tesseract:      "tesseract",
		},
		LLM: LLMCfg{
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			Temperature:    0.1,
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
	}
}
