package textlayer

import (
	"strings"
	"testing"
)

func TestExtract_GracefulOnBadInput(t *testing.T) {
	e := NewExtractor(0, nil)

	t.Run("empty bytes", func(t *testing.T) {
		res := e.Extract(nil, "empty.pdf")
		if res.Success {
			t.Error("expected Success = false")
		}
		if res.CharCount != 0 {
			t.Errorf("CharCount = %d, want 0", res.CharCount)
		}
		if res.Error == "" {
			t.Error("expected a non-empty error message")
		}
	})

	t.Run("non-PDF bytes", func(t *testing.T) {
		res := e.Extract([]byte("this is definitely not a pdf file"), "notes.txt")
		if res.Success {
			t.Error("expected Success = false")
		}
		if res.HasTextLayer {
			t.Error("expected HasTextLayer = false")
		}
	})

	t.Run("truncated PDF header", func(t *testing.T) {
		// Valid magic, garbage body. Must not panic.
		res := e.Extract([]byte("%PDF-1.7\ngarbage garbage garbage"), "broken.pdf")
		if res.Success {
			t.Error("expected Success = false for unparseable body")
		}
		if res.CharCount != 0 {
			t.Errorf("CharCount = %d, want 0", res.CharCount)
		}
	})
}

func TestSufficient_ThresholdBoundary(t *testing.T) {
	e := NewExtractor(DefaultThreshold, nil)

	cases := []struct {
		chars int
		want  bool
	}{
		{0, false},
		{399, false},
		{400, true}, // inclusive boundary
		{401, true},
		{10000, true},
	}
	for _, tc := range cases {
		if got := e.sufficient(tc.chars); got != tc.want {
			t.Errorf("sufficient(%d) = %v, want %v", tc.chars, got, tc.want)
		}
	}
}

func TestNewExtractor_Defaults(t *testing.T) {
	e := NewExtractor(-1, nil)
	if e.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %d, want %d", e.Threshold(), DefaultThreshold)
	}

	e = NewExtractor(250, nil)
	if e.Threshold() != 250 {
		t.Errorf("Threshold() = %d, want 250", e.Threshold())
	}
	if !e.sufficient(250) {
		t.Error("custom threshold should be inclusive")
	}
	if e.sufficient(249) {
		t.Error("249 chars should not satisfy a 250 threshold")
	}
}

func TestHasTextLayer_QuickCheck(t *testing.T) {
	e := NewExtractor(0, nil)
	ok, text := e.HasTextLayer([]byte("not a pdf"))
	if ok {
		t.Error("expected false for non-PDF input")
	}
	if strings.TrimSpace(text) != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}
