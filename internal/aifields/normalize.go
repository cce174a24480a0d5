package aifields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/marintec/certscan/internal/fields"
)

// formCodeRe matches abbreviation+revision strings such as "CU (02/19)",
// "CG 02-19" and "SR-03/20" that models sometimes place in date fields.
var formCodeRe = regexp.MustCompile(`^[A-Za-z]{1,5}[ \-]?\(?\d{2}[-/]\d{2}\)?$`)

// vesselTypes are classification strings that are never a vessel's proper
// name.
var vesselTypes = map[string]struct{}{
	"BULK CARRIER":       {},
	"OIL TANKER":         {},
	"CHEMICAL TANKER":    {},
	"PRODUCT TANKER":     {},
	"GAS CARRIER":        {},
	"LPG CARRIER":        {},
	"LNG CARRIER":        {},
	"CONTAINER SHIP":     {},
	"GENERAL CARGO":      {},
	"GENERAL CARGO SHIP": {},
	"PASSENGER SHIP":     {},
	"RO-RO SHIP":         {},
	"RO-RO CARGO SHIP":   {},
	"VEHICLE CARRIER":    {},
	"FISHING VESSEL":     {},
	"TUG":                {},
	"BARGE":              {},
}

// subjectStopwords are survey-type and filler words stripped from the edges
// of the survey/certificate name so only the surveyed subject remains.
var subjectStopwords = map[string]struct{}{
	"annual": {}, "special": {}, "intermediate": {}, "periodical": {},
	"renewal": {}, "occasional": {}, "initial": {}, "survey": {},
	"report": {}, "record": {}, "certificate": {}, "statement": {},
	"of": {}, "for": {}, "the": {}, "a": {}, "an": {}, "this": {},
	"document": {}, "is": {}, "on": {},
}

// dateLayouts are unambiguous formats accepted for date normalization.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2-Jan-2006",
}

// numericDateRe matches day/month/year style numeric dates whose order must
// be disambiguated before parsing.
var numericDateRe = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)

// normalizeDate converts a date string to YYYY-MM-DD. Ambiguous values are
// dropped rather than guessed.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		day, month := 0, 0
		switch {
		case a > 12 && b <= 12:
			day, month = a, b
		case b > 12 && a <= 12:
			day, month = b, a
		default:
			// 05/06/2023 could be either order.
			return ""
		}
		t := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() == day && int(t.Month()) == month {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

// looksLikeFormCode reports whether a string is an abbreviation+revision
// form code rather than a date.
func looksLikeFormCode(s string) bool {
	return formCodeRe.MatchString(strings.TrimSpace(s))
}

// isVesselType reports whether a candidate ship name is actually a vessel
// type classification.
func isVesselType(s string) bool {
	_, ok := vesselTypes[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// trimSubject strips survey-type and filler words from the edges of the
// name field, leaving only the surveyed subject.
func trimSubject(s string) string {
	words := strings.Fields(s)

	for len(words) > 0 {
		if _, stop := subjectStopwords[strings.ToLower(words[0])]; !stop {
			break
		}
		words = words[1:]
	}
	for len(words) > 0 {
		if _, stop := subjectStopwords[strings.ToLower(words[len(words)-1])]; !stop {
			break
		}
		words = words[:len(words)-1]
	}

	return strings.Join(words, " ")
}

// applyFieldPolicies enforces the extraction rules the prompt asks for, so
// that a sloppy model response still comes out policy-clean.
func applyFieldPolicies(f *fields.AIFields) {
	f.SurveyReportName = trimSubject(f.SurveyReportName)

	if isVesselType(f.ShipName) {
		f.ShipName = ""
	}

	if f.IssuedDate != "" {
		if looksLikeFormCode(f.IssuedDate) {
			if f.ReportForm == "" {
				f.ReportForm = f.IssuedDate
			}
			f.IssuedDate = ""
		} else {
			f.IssuedDate = normalizeDate(f.IssuedDate)
		}
	}
}
