package aifields

import (
	"strings"

	"github.com/marintec/certscan/internal/fields"
)

// buildSystemPrompt composes the system message with the output field list
// and the per-field extraction rules for maritime survey documents.
func buildSystemPrompt(docType fields.DocumentType) string {
	names := fields.Names(docType)

	parts := []string{
		"You are a maritime document parser for classification society certificates and survey reports.",
		"Return ONLY a JSON object, no markdown, no commentary.",
		"The object must contain exactly these string fields: " + strings.Join(names, ", ") + ".",
		"If a value is not present in the document, use the empty string \"\". Never invent values and never output null.",

		// Subject-only extraction for the name field.
		"For the survey/certificate name field, extract only the SUBJECT of the survey (e.g. \"cargo gear\", \"ballast tanks\").",
		"Exclude survey-type words such as Annual, Special, Intermediate, Periodical, Renewal, Survey, Report, Record, Certificate.",

		// Report form rules.
		"For 'report_form', prefer an abbreviation+date code from the FILENAME (e.g. \"CG (02-19)\") over codes in the document text.",
		"Form abbreviations often hint at the subject (e.g. CG relates to cargo gear), but only use this as a hint, never to fabricate a value.",

		// Date rules.
		"Dates must be normalized to YYYY-MM-DD.",
		"If a short alphanumeric string with slashes looks like a form code rather than a date, it belongs in 'report_form', not a date field. Leave ambiguous dates empty.",

		// Ship name rules.
		"'ship_name' is the vessel's proper name only. A vessel type such as \"BULK CARRIER\" or \"OIL TANKER\" is never a ship name; if only a type is present, leave 'ship_name' empty.",
		"'ship_imo' is the 7-digit IMO number, digits only.",
	}

	return strings.Join(parts, " ")
}

// buildUserPrompt packages the summary document and the filename hint.
// Report form codes are frequently embedded in filenames, so the filename is
// called out explicitly.
func buildUserPrompt(summaryText, filename string, maxChars int) string {
	var b strings.Builder

	if f := strings.TrimSpace(filename); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n\n")
	}

	b.WriteString("Document:\n")
	summaryText = strings.TrimSpace(summaryText)
	if maxChars > 0 && len(summaryText) > maxChars {
		b.WriteString(summaryText[:maxChars])
		b.WriteString("\n...(truncated)")
	} else {
		b.WriteString(summaryText)
	}

	return b.String()
}
