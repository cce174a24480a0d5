// Package fields defines the document field vocabulary shared by the
// extraction, summary and merge stages.
package fields

import "strings"

// DocumentType identifies the kind of maritime document being analyzed.
type DocumentType string

const (
	DocumentTypeCertificate  DocumentType = "certificate"
	DocumentTypeSurveyReport DocumentType = "survey_report"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeCertificate || t == DocumentTypeSurveyReport
}

// ParseDocumentType maps a user-supplied string to a DocumentType.
// Unknown values default to survey_report.
func ParseDocumentType(s string) DocumentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "certificate", "cert":
		return DocumentTypeCertificate
	default:
		return DocumentTypeSurveyReport
	}
}

// AIFields is the normalized field set produced by the AI extraction stage.
// Absent data is the empty string, never null. Certificate documents use the
// cert_* synonyms on the wire; they are folded into these fields at decode.
type AIFields struct {
	SurveyReportName string `json:"survey_report_name"`
	ReportForm       string `json:"report_form"`
	SurveyReportNo   string `json:"survey_report_no"`
	IssuedBy         string `json:"issued_by"`
	IssuedDate       string `json:"issued_date"`
	ShipName         string `json:"ship_name"`
	ShipIMO          string `json:"ship_imo"`
	SurveyorName     string `json:"surveyor_name"`
	Note             string `json:"note"`
	Status           string `json:"status"`
}

// IsEmpty reports whether no field carries a value.
func (f AIFields) IsEmpty() bool {
	return f == AIFields{}
}

// Names returns the wire field names for a document type, in prompt order.
func Names(t DocumentType) []string {
	if t == DocumentTypeCertificate {
		return []string{
			"cert_name", "report_form", "cert_no", "issued_by", "issued_date",
			"ship_name", "ship_imo", "surveyor_name", "note", "status",
		}
	}
	return []string{
		"survey_report_name", "report_form", "survey_report_no", "issued_by",
		"issued_date", "ship_name", "ship_imo", "surveyor_name", "note", "status",
	}
}
