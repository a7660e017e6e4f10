package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// exportedIndexSchema is the JSON Schema an ExportedIndex must satisfy
// for `xplib export --validate-schema`. Kept as a Go string rather
// than a loaded file: there's no other schema asset in this repo to
// justify a testdata/ directory for a single document.
const exportedIndexSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ExportedIndex",
  "type": "object",
  "required": ["schemaVersion", "definitions"],
  "properties": {
    "schemaVersion": { "type": "string" },
    "definitions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["virtualPath", "isPrivate", "regions"],
        "properties": {
          "virtualPath": { "type": "string", "minLength": 1 },
          "isPrivate": { "type": "boolean" },
          "regions": {
            "type": "array",
            "items": { "type": "string" }
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// ValidateExportedIndex checks encoded against the ExportedIndex JSON
// Schema and returns a combined error describing every violation.
func ValidateExportedIndex(encoded string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(exportedIndexSchema),
		gojsonschema.NewStringLoader(encoded),
	)
	if err != nil {
		return fmt.Errorf("validate exported index: %w", err)
	}
	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, item := range result.Errors() {
		messages = append(messages, item.String())
	}
	return fmt.Errorf("exported index failed schema validation: %s", strings.Join(messages, "; "))
}

// MarshalAndValidate is the helper `xplib export --validate-schema`
// calls: it encodes index and validates the encoding in one step, so
// callers never validate stale JSON.
func MarshalAndValidate(index ExportedIndex) (string, error) {
	payload, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return "", err
	}
	encoded := string(payload)
	if err := ValidateExportedIndex(encoded); err != nil {
		return "", err
	}
	return encoded, nil
}
