package runstats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// generateSchema creates a jsonschema.Schema for the run_results artifact
func generateSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[RunResults](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON schema: %w", err)
	}

	schema.Title = "dbt run results"
	schema.Description = "Subset of the dbt run_results.json artifact consumed by dbt-runstats"
	schema.Schema = "https://json-schema.org/draft/2020-12/schema"

	return schema, nil
}

// SchemaForRunResults returns the artifact schema as indented JSON.
func SchemaForRunResults() (string, error) {
	schema, err := generateSchema()
	if err != nil {
		return "", err
	}

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal final schema: %w", err)
	}
	return string(schemaJSON), nil
}

// ValidationError represents a single validation error with location information
type ValidationError struct {
	Path    string // JSON path to the error (e.g., "results.0.unique_id")
	Message string // Human-readable error message
}

// ValidationResult contains the results of validating a run_results file
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidateResultsFile validates a run_results file against the artifact
// schema. Validation is advisory: the count path stays permissive and
// never requires it.
func ValidateResultsFile(filePath string) (*ValidationResult, error) {
	if ext := strings.ToLower(filepath.Ext(filePath)); ext != ".json" {
		return nil, fmt.Errorf("unsupported file extension: %s (expected .json)", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	schema, err := generateSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse results file as JSON: %w", err)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}

	validationErr := resolved.Validate(doc)

	result := &ValidationResult{
		Valid: validationErr == nil,
	}

	if validationErr != nil {
		result.Errors = []ValidationError{
			{
				Path:    "",
				Message: validationErr.Error(),
			},
		}
	}

	return result, nil
}
