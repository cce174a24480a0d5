package aifields

import (
	"testing"

	"github.com/marintec/certscan/internal/fields"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023-06-15", "2023-06-15"},
		{"15 Jun 2023", "2023-06-15"},
		{"15 June 2023", "2023-06-15"},
		{"June 15, 2023", "2023-06-15"},
		{"15-Jun-2023", "2023-06-15"},
		{"2023/06/15", "2023-06-15"},
		{"25/06/2023", "2023-06-25"}, // day 25 disambiguates
		{"06/25/2023", "2023-06-25"},
		{"05/06/2023", ""}, // ambiguous, never guessed
		{"", ""},
		{"not a date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeDate(tt.in); got != tt.want {
				t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLooksLikeFormCode(t *testing.T) {
	for _, s := range []string{"CU (02/19)", "CG 02-19", "SR-03/20", "cu (02/19)"} {
		if !looksLikeFormCode(s) {
			t.Errorf("looksLikeFormCode(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"2023-06-15", "15 Jun 2023", "MV OCEAN STAR", ""} {
		if looksLikeFormCode(s) {
			t.Errorf("looksLikeFormCode(%q) = true, want false", s)
		}
	}
}

func TestTrimSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"survey record for cargo gear", "cargo gear"},
		{"Annual Survey of Ballast Tanks", "Ballast Tanks"},
		{"cargo gear survey", "cargo gear"},
		{"cargo gear", "cargo gear"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := trimSubject(tt.in); got != tt.want {
			t.Errorf("trimSubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyFieldPolicies(t *testing.T) {
	t.Run("vessel type is never a ship name", func(t *testing.T) {
		f := fields.AIFields{ShipName: "BULK CARRIER"}
		applyFieldPolicies(&f)
		if f.ShipName != "" {
			t.Errorf("ShipName = %q, want empty", f.ShipName)
		}

		f = fields.AIFields{ShipName: "MV OCEAN STAR"}
		applyFieldPolicies(&f)
		if f.ShipName != "MV OCEAN STAR" {
			t.Errorf("ShipName = %q, want MV OCEAN STAR", f.ShipName)
		}
	})

	t.Run("form code in date field routes to report form", func(t *testing.T) {
		f := fields.AIFields{IssuedDate: "CU (02/19)"}
		applyFieldPolicies(&f)
		if f.IssuedDate != "" {
			t.Errorf("IssuedDate = %q, want empty", f.IssuedDate)
		}
		if f.ReportForm != "CU (02/19)" {
			t.Errorf("ReportForm = %q, want CU (02/19)", f.ReportForm)
		}
	})

	t.Run("form code never overwrites an existing report form", func(t *testing.T) {
		f := fields.AIFields{IssuedDate: "CU (02/19)", ReportForm: "CG (02-19)"}
		applyFieldPolicies(&f)
		if f.ReportForm != "CG (02-19)" {
			t.Errorf("ReportForm = %q, want CG (02-19)", f.ReportForm)
		}
		if f.IssuedDate != "" {
			t.Errorf("IssuedDate = %q, want empty", f.IssuedDate)
		}
	})

	t.Run("dates are normalized", func(t *testing.T) {
		f := fields.AIFields{IssuedDate: "15 Jun 2023"}
		applyFieldPolicies(&f)
		if f.IssuedDate != "2023-06-15" {
			t.Errorf("IssuedDate = %q, want 2023-06-15", f.IssuedDate)
		}
	})
}
