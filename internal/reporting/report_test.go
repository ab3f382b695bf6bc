package reporting

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	runstats "github.com/wolfeidau/dbt-runstats"
)

// stripANSI removes ANSI escape codes from a string
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*[mGKH]`)
	return ansiRegex.ReplaceAllString(str, "")
}

// captureOutput captures stdout during test execution
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func sampleSummaries() []runstats.RunSummary {
	return []runstats.RunSummary{
		{
			FilePath:           "logs/run_results.json",
			RunDate:            "2024-01-15",
			RunTimestamp:       "2024-01-15T10:30:00Z",
			DBTVersion:         "1.7.4",
			InvocationID:       "inv-1",
			TotalModels:        3,
			SuccessfulModels:   2,
			FailedModels:       1,
			SuccessRate:        66.67,
			AvgExecutionTime:   1.5,
			TotalExecutionTime: 3.0,
		},
		{
			FilePath:           "archive/run_results_with_an_extremely_long_name.json",
			RunDate:            "2024-02-01",
			RunTimestamp:       "2024-02-01T08:00:00Z",
			DBTVersion:         "1.7.4",
			InvocationID:       "inv-2",
			TotalModels:        5,
			SuccessfulModels:   5,
			FailedModels:       0,
			SuccessRate:        100.0,
			AvgExecutionTime:   0.8,
			TotalExecutionTime: 4.0,
		},
		{
			FilePath:         "old/run_results.json",
			RunDate:          "unknown",
			RunTimestamp:     "unknown",
			DBTVersion:       "unknown",
			InvocationID:     "unknown",
			TotalModels:      2,
			SuccessfulModels: 1,
			FailedModels:     1,
			SuccessRate:      50.0,
		},
	}
}

func TestPrintReport_SingleDetailView(t *testing.T) {
	assert := require.New(t)

	summaries := sampleSummaries()[:1]

	output := stripANSI(captureOutput(func() {
		err := PrintReport(summaries)
		assert.NoError(err)
	}))

	assert.Contains(output, "Model Build Count")
	assert.Contains(output, "File:          logs/run_results.json")
	assert.Contains(output, "Date:          2024-01-15")
	assert.Contains(output, "dbt Version:   1.7.4")
	assert.Contains(output, "Total Models Built: 3")
	assert.Contains(output, "Successful:         2")
	assert.Contains(output, "Failed:             1")
	assert.Contains(output, "Success Rate:       66.67%")

	// Timed records exist, so the performance block is shown.
	assert.Contains(output, "Performance")
	assert.Contains(output, "Average Execution Time: 1.500 seconds")
	assert.Contains(output, "Total Execution Time:   3.000 seconds")
}

func TestPrintReport_SingleWithoutTiming(t *testing.T) {
	assert := require.New(t)

	summary := sampleSummaries()[2]

	output := stripANSI(captureOutput(func() {
		err := PrintReport([]runstats.RunSummary{summary})
		assert.NoError(err)
	}))

	assert.Contains(output, "Total Models Built: 2")
	assert.NotContains(output, "Performance")
}

func TestPrintReport_SummaryTable(t *testing.T) {
	assert := require.New(t)

	summaries := sampleSummaries()

	output := stripANSI(captureOutput(func() {
		err := PrintReport(summaries)
		assert.NoError(err)
	}))

	assert.Contains(output, "Model Build Summary")

	// Rows are sorted by run date descending as strings, so "unknown"
	// sorts above the ISO dates.
	idxUnknown := strings.Index(output, "unknown")
	idxFeb := strings.Index(output, "2024-02-01")
	idxJan := strings.Index(output, "2024-01-15")
	assert.Greater(idxUnknown, -1)
	assert.Greater(idxFeb, idxUnknown)
	assert.Greater(idxJan, idxFeb)

	// File names are truncated to 28 characters.
	assert.Contains(output, "run_results_with_an_extremel")
	assert.NotContains(output, "run_results_with_an_extremely_long_name.json")

	// Totals row recomputes the overall success rate: 8/10 models.
	assert.Contains(output, "TOTAL")
	assert.Contains(output, "All Dates")
	assert.Contains(output, "80.0%")

	// Trailing statistics block.
	assert.Contains(output, "Overall Statistics")
	assert.Contains(output, "Total Runs Analyzed:    3")
	assert.Contains(output, "Total Models Built:     10")
	assert.Contains(output, "Average Models per Run: 3.3")
	assert.Contains(output, "Total Execution Time:   7.00 seconds")
}

func TestPrintJSON(t *testing.T) {
	assert := require.New(t)

	summaries := sampleSummaries()

	output := captureOutput(func() {
		err := PrintJSON(summaries)
		assert.NoError(err)
	})

	var decoded []map[string]any
	assert.NoError(json.Unmarshal([]byte(output), &decoded))
	assert.Len(decoded, 3)

	fields := []string{
		"file_path", "run_date", "run_timestamp", "dbt_version",
		"invocation_id", "total_models", "successful_models",
		"failed_models", "success_rate", "avg_execution_time",
		"total_execution_time",
	}
	for _, entry := range decoded {
		for _, field := range fields {
			assert.Contains(entry, field)
		}
	}

	assert.Equal("logs/run_results.json", decoded[0]["file_path"])
	assert.InDelta(66.67, decoded[0]["success_rate"].(float64), 0.0001)
}
