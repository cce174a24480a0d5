package aifields

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marintec/certscan/internal/fields"
)

// decodeFields maps a parsed model response onto the typed field set.
// Certificate-flavoured synonyms (cert_name, cert_no, issue_date,
// valid_date) fold into the canonical fields; unknown keys are ignored.
func decodeFields(raw json.RawMessage) (fields.AIFields, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fields.AIFields{}, fmt.Errorf("decode ai response: %w", err)
	}

	var f fields.AIFields
	for _, b := range fieldBindings {
		for _, key := range b.keys {
			val, ok := m[key]
			if !ok {
				continue
			}
			s, sok := val.(string)
			if !sok {
				continue
			}
			setIfEmpty(b.dst(&f), strings.TrimSpace(s))
		}
	}

	return f, nil
}

// fieldBindings walks wire names in a fixed order so that when a response
// carries both a canonical key and a certificate synonym, the canonical
// value always survives.
var fieldBindings = []struct {
	keys []string
	dst  func(*fields.AIFields) *string
}{
	{[]string{"survey_report_name", "cert_name"}, func(f *fields.AIFields) *string { return &f.SurveyReportName }},
	{[]string{"report_form"}, func(f *fields.AIFields) *string { return &f.ReportForm }},
	{[]string{"survey_report_no", "cert_no"}, func(f *fields.AIFields) *string { return &f.SurveyReportNo }},
	{[]string{"issued_by"}, func(f *fields.AIFields) *string { return &f.IssuedBy }},
	{[]string{"issued_date", "issue_date", "valid_date"}, func(f *fields.AIFields) *string { return &f.IssuedDate }},
	{[]string{"ship_name"}, func(f *fields.AIFields) *string { return &f.ShipName }},
	{[]string{"ship_imo"}, func(f *fields.AIFields) *string { return &f.ShipIMO }},
	{[]string{"surveyor_name"}, func(f *fields.AIFields) *string { return &f.SurveyorName }},
	{[]string{"note"}, func(f *fields.AIFields) *string { return &f.Note }},
	{[]string{"status"}, func(f *fields.AIFields) *string { return &f.Status }},
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
