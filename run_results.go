package runstats

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// RunMetadata is the optional metadata block at the top of a
// run_results.json artifact. Absent fields default to "unknown" when
// summarized.
type RunMetadata struct {
	GeneratedAt  string `json:"generated_at,omitempty" jsonschema:"Timestamp the artifact was generated at (ISO-8601)"`
	DBTVersion   string `json:"dbt_version,omitempty" jsonschema:"Version of dbt that produced the run"`
	InvocationID string `json:"invocation_id,omitempty" jsonschema:"Unique identifier for the dbt invocation"`
}

// RunResult is a single entry in the results list. The artifact carries
// more fields per result; only these are needed for counting.
type RunResult struct {
	UniqueID      string  `json:"unique_id" jsonschema:"Namespaced node identifier, e.g. model.project.orders"`
	Status        string  `json:"status,omitempty" jsonschema:"Execution status, e.g. success or error"`
	ExecutionTime float64 `json:"execution_time,omitempty" jsonschema:"Execution duration in seconds"`
}

// RunResults is the subset of the dbt run_results.json artifact this tool
// consumes. Parsing is permissive: missing sections default to empty.
type RunResults struct {
	Metadata RunMetadata `json:"metadata,omitempty" jsonschema:"Run metadata"`
	Results  []RunResult `json:"results,omitempty" jsonschema:"Per-node execution results"`
}

// RunSummary holds the aggregated model statistics for one run_results
// file. Immutable once computed.
type RunSummary struct {
	FilePath           string  `json:"file_path"`
	RunDate            string  `json:"run_date"`
	RunTimestamp       string  `json:"run_timestamp"`
	DBTVersion         string  `json:"dbt_version"`
	InvocationID       string  `json:"invocation_id"`
	TotalModels        int     `json:"total_models"`
	SuccessfulModels   int     `json:"successful_models"`
	FailedModels       int     `json:"failed_models"`
	SuccessRate        float64 `json:"success_rate"`
	AvgExecutionTime   float64 `json:"avg_execution_time"`
	TotalExecutionTime float64 `json:"total_execution_time"`
}

// Unknown is the sentinel for absent or unparsable metadata values.
const Unknown = "unknown"

// modelPrefix selects models from the results list; tests, seeds and
// snapshots share the same result shape under other prefixes.
const modelPrefix = "model."

// LoadRunResults reads and parses a run_results file.
func LoadRunResults(path string) (*RunResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc RunResults
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return &doc, nil
}

// Summarize counts the models in a parsed run_results document and
// derives the per-run statistics.
func Summarize(path string, doc *RunResults) RunSummary {
	summary := RunSummary{
		FilePath:     path,
		RunDate:      Unknown,
		RunTimestamp: Unknown,
		DBTVersion:   Unknown,
		InvocationID: Unknown,
	}

	if doc.Metadata.GeneratedAt != "" {
		summary.RunTimestamp = doc.Metadata.GeneratedAt
	}
	if doc.Metadata.DBTVersion != "" {
		summary.DBTVersion = doc.Metadata.DBTVersion
	}
	if doc.Metadata.InvocationID != "" {
		summary.InvocationID = doc.Metadata.InvocationID
	}
	summary.RunDate = runDate(summary.RunTimestamp)

	var times []float64
	for _, result := range doc.Results {
		if !strings.HasPrefix(result.UniqueID, modelPrefix) {
			continue
		}

		summary.TotalModels++
		if result.Status == "success" {
			summary.SuccessfulModels++
		} else {
			summary.FailedModels++
		}

		// Zero or absent execution times stay out of the timing sample,
		// so the total only covers positive-time models.
		if result.ExecutionTime > 0 {
			times = append(times, result.ExecutionTime)
		}
	}

	if summary.TotalModels > 0 {
		rate := float64(summary.SuccessfulModels) / float64(summary.TotalModels) * 100
		summary.SuccessRate = round2(rate)
	}

	if len(times) > 0 {
		var total float64
		for _, t := range times {
			total += t
		}
		summary.AvgExecutionTime = round3(total / float64(len(times)))
		summary.TotalExecutionTime = round3(total)
	}

	return summary
}

// timestampLayouts covers RFC 3339 (with or without fractional seconds)
// and the offset-less form older dbt versions wrote for generated_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func runDate(timestamp string) string {
	if timestamp == "" || timestamp == Unknown {
		return Unknown
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, timestamp); err == nil {
			return ts.Format("2006-01-02")
		}
	}

	return Unknown
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
