package output

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ReportSchema describes the JSON report document emitted by
// JSONReporter. Hosts consuming reports over a pipe can validate against
// it before parsing.
const ReportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["runId", "time", "duration", "summary", "root"],
  "properties": {
    "runId": {"type": "string", "minLength": 1},
    "time": {"type": "string"},
    "duration": {"type": "number", "minimum": 0},
    "summary": {
      "type": "object",
      "required": ["total", "passed", "failed", "pending", "skipped"],
      "properties": {
        "total": {"type": "integer", "minimum": 0},
        "passed": {"type": "integer", "minimum": 0},
        "failed": {"type": "integer", "minimum": 0},
        "pending": {"type": "integer", "minimum": 0},
        "skipped": {"type": "integer", "minimum": 0}
      }
    },
    "root": {"$ref": "#/definitions/context"}
  },
  "definitions": {
    "context": {
      "type": "object",
      "required": ["description"],
      "properties": {
        "description": {"type": "string"},
        "specs": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["description", "status", "duration"],
            "properties": {
              "description": {"type": "string"},
              "status": {"enum": ["passed", "failed", "pending", "skipped"]},
              "duration": {"type": "number", "minimum": 0},
              "tags": {"type": "array", "items": {"type": "string"}},
              "error": {"type": "string"}
            }
          }
        },
        "children": {
          "type": "array",
          "items": {"$ref": "#/definitions/context"}
        }
      }
    }
  }
}`

// ValidateReportJSON checks a JSON report document against ReportSchema.
func ValidateReportJSON(doc []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(ReportSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validating report: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("report does not match schema: %v", result.Errors())
	}
	return nil
}
