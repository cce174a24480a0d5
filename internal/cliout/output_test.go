package cliout

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	data := map[string]any{"report_form": "CU (02/19)", "confidence": "high"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, FormatJSON, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		if !strings.Contains(buf.String(), `"report_form": "CU (02/19)"`) {
			t.Errorf("unexpected json output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, FormatYAML, data); err != nil {
			t.Fatalf("OutputTo: %v", err)
		}
		if !strings.Contains(buf.String(), "confidence: high") {
			t.Errorf("unexpected yaml output: %s", buf.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, Format("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestSetFormat(t *testing.T) {
	SetFormat("json")
	if GetFormat() != FormatJSON {
		t.Errorf("GetFormat() = %v, want json", GetFormat())
	}
	SetFormat("anything-else")
	if GetFormat() != FormatYAML {
		t.Errorf("GetFormat() = %v, want yaml fallback", GetFormat())
	}
}
