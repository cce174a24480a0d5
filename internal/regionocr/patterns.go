package regionocr

import (
	"regexp"
	"strings"
)

// Pattern is one entry in an ordered extraction cascade. The first pattern
// whose capture survives validation wins; later patterns are not consulted.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// numberChars captures report numbers such as "A/25/772" and "R-001":
// alphanumeric start, then number punctuation, no spaces.
const numberChars = `([A-Za-z0-9][A-Za-z0-9\-/.]*)`

// formChars additionally allows spaces and parentheses for form codes such
// as "CU (02/19)".
const formChars = `([A-Za-z0-9][A-Za-z0-9 ()\-/.]*)`

// ReportNoPatterns extracts the survey report / certificate number from
// header+footer OCR text. Explicit report labels outrank the newer
// authorization-number source, which outranks bare and reference labels.
var ReportNoPatterns = []Pattern{
	{"survey_report_no", regexp.MustCompile(`(?i)Survey\s+Report\s+No\.?\s*[:#]?\s*` + numberChars)},
	{"report_no", regexp.MustCompile(`(?i)\bReport\s+No\.?\s*[:#]?\s*` + numberChars)},
	{"authorization_no", regexp.MustCompile(`(?i)\bAuthori[sz]ation\s+No\.?\s*[:#]?\s*` + numberChars)},
	{"bare_no", regexp.MustCompile(`(?i)\bNo\.?\s*:\s*` + numberChars)},
	{"reference_no", regexp.MustCompile(`(?i)\bReference\s+No\.?\s*[:#]?\s*` + numberChars)},
}

// FormPatterns extracts the report form code. Labelled "Form No." / "Form
// Type" variants are tried before a bare "Form:" label.
var FormPatterns = []Pattern{
	{"form_no", regexp.MustCompile(`(?i)\bForm\s+(?:No|Type)\.?\s*[:#]?\s*` + formChars)},
	{"bare_form", regexp.MustCompile(`(?i)\bForm\s*:\s*` + formChars)},
}

// ExtractField applies an ordered pattern cascade to text. It returns the
// first validated capture and the name of the matching pattern, or empty
// strings when nothing usable is found.
func ExtractField(patterns []Pattern, text string, maxLen int) (value, pattern string) {
	for _, p := range patterns {
		m := p.Re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := cleanCapture(m[1])
		if !ValidValue(v, maxLen) {
			continue
		}
		return v, p.Name
	}
	return "", ""
}

// ValidValue rejects captures that are too long for the field or that carry
// no alphanumeric content, both symptoms of OCR noise.
func ValidValue(v string, maxLen int) bool {
	if v == "" || len(v) > maxLen {
		return false
	}
	return strings.ContainsFunc(v, func(r rune) bool {
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}

// cleanCapture trims whitespace and the trailing punctuation OCR tends to
// glue onto a value.
func cleanCapture(v string) string {
	v = strings.TrimSpace(v)
	// Collapse runs of interior whitespace introduced by band concatenation.
	v = strings.Join(strings.Fields(v), " ")
	return strings.TrimRight(v, ".,;:- ")
}
