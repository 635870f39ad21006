package report

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/AntoScher/resume-analyzer/internal/schemas"
	"github.com/AntoScher/resume-analyzer/internal/types"
)

//go:embed report.schema.json
var reportSchema string

// Validate checks a serialized report against the embedded JSON Schema.
// A failure here is a programming error in the assembler, not a runtime
// condition.
func Validate(r *types.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return schemas.ValidateJSONString(reportSchema, string(data))
}
