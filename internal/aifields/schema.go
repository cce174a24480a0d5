package aifields

import (
	"encoding/json"

	"github.com/marintec/certscan/internal/fields"
)

// fieldSchema returns the JSON schema the model's response is validated
// against: a flat object of string fields, one per wire field name.
func fieldSchema(docType fields.DocumentType) json.RawMessage {
	props := map[string]any{}
	for _, name := range fields.Names(docType) {
		props[name] = map[string]any{"type": "string"}
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}

	raw, _ := json.Marshal(schema)
	return raw
}
