package reporting

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	runstats "github.com/wolfeidau/dbt-runstats"
	"github.com/wolfeidau/dbt-runstats/internal/help"
)

// PrintJSON writes the full ordered collection of summaries to stdout as
// an indented JSON array, regardless of count.
func PrintJSON(summaries []runstats.RunSummary) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summaries: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

// PrintReport renders the single-file detail view when exactly one summary
// was produced, and the multi-file summary otherwise.
func PrintReport(summaries []runstats.RunSummary) error {
	styles := help.DefaultStyles()

	var content strings.Builder

	if len(summaries) == 1 {
		content.WriteString(captureDetailView(summaries[0], styles))
	} else {
		content.WriteString(h1(styles, "Model Build Summary"))
		content.WriteString(captureSummaryTable(summaries, styles))
		content.WriteString(captureOverallStats(summaries, styles))
	}

	// Wrap the entire output with top/bottom margins only
	marginStyle := lipgloss.NewStyle().
		MarginTop(1).
		MarginBottom(1)

	fmt.Println(marginStyle.Render(content.String()))

	return nil
}

// Heading helpers for consistent spacing
func h1(styles help.Styles, text string) string {
	return styles.Heading.Render("# "+text) + "\n\n"
}

func h2(styles help.Styles, text string) string {
	return styles.Heading.Render("## "+text) + "\n\n"
}

func captureDetailView(summary runstats.RunSummary, styles help.Styles) string {
	var output strings.Builder

	output.WriteString(h1(styles, "Model Build Count"))

	output.WriteString(fmt.Sprintf("File:          %s\n", summary.FilePath))
	output.WriteString(fmt.Sprintf("Date:          %s\n", summary.RunDate))
	output.WriteString(fmt.Sprintf("dbt Version:   %s\n", summary.DBTVersion))
	output.WriteString(fmt.Sprintf("Timestamp:     %s\n", summary.RunTimestamp))
	output.WriteString(fmt.Sprintf("Invocation:    %s\n", summary.InvocationID))
	output.WriteString("\n")

	output.WriteString(h2(styles, "Model Statistics"))
	output.WriteString(fmt.Sprintf("Total Models Built: %d\n", summary.TotalModels))
	output.WriteString(fmt.Sprintf("Successful:         %s\n",
		styles.Success.Render(fmt.Sprintf("%d", summary.SuccessfulModels))))
	output.WriteString(fmt.Sprintf("Failed:             %s\n",
		renderFailedCount(summary.FailedModels, styles)))
	output.WriteString(fmt.Sprintf("Success Rate:       %s\n",
		renderSuccessRate(summary.SuccessRate, 2, styles)))

	if summary.TotalExecutionTime > 0 {
		output.WriteString("\n")
		output.WriteString(h2(styles, "Performance"))
		output.WriteString(fmt.Sprintf("Average Execution Time: %.3f seconds\n", summary.AvgExecutionTime))
		output.WriteString(fmt.Sprintf("Total Execution Time:   %.3f seconds\n", summary.TotalExecutionTime))
	}

	return output.String()
}

func captureSummaryTable(summaries []runstats.RunSummary, styles help.Styles) string {
	var output strings.Builder

	// Newest runs first. The run date is compared as a string, so the
	// "unknown" sentinel sorts by its literal value.
	sorted := make([]runstats.RunSummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RunDate > sorted[j].RunDate
	})

	header := fmt.Sprintf("%-30s %-12s %-7s %-8s %-8s", "File", "Date", "Models", "Success", "Time(s)")
	output.WriteString(styles.Heading.Render(header) + "\n")
	output.WriteString(strings.Repeat("-", 80) + "\n")

	for _, summary := range sorted {
		name := filepath.Base(summary.FilePath)
		if len(name) > 28 {
			name = name[:28]
		}

		output.WriteString(fmt.Sprintf("%-30s %-12s %-7d %6.1f%% %7.2f\n",
			name, summary.RunDate, summary.TotalModels,
			summary.SuccessRate, summary.TotalExecutionTime))
	}

	totalModels, totalSuccessful, totalTime := totals(summaries)

	output.WriteString(strings.Repeat("-", 80) + "\n")
	output.WriteString(fmt.Sprintf("%-30s %-12s %-7d %6.1f%% %7.2f\n",
		"TOTAL", "All Dates", totalModels,
		overallSuccessRate(totalSuccessful, totalModels), totalTime))
	output.WriteString("\n")

	return output.String()
}

func captureOverallStats(summaries []runstats.RunSummary, styles help.Styles) string {
	var output strings.Builder

	totalModels, totalSuccessful, totalTime := totals(summaries)

	modelsPerRun := 0.0
	if len(summaries) > 0 {
		modelsPerRun = float64(totalModels) / float64(len(summaries))
	}

	output.WriteString(h2(styles, "Overall Statistics"))
	output.WriteString(fmt.Sprintf("Total Runs Analyzed:    %d\n", len(summaries)))
	output.WriteString(fmt.Sprintf("Total Models Built:     %d\n", totalModels))
	output.WriteString(fmt.Sprintf("Average Models per Run: %.1f\n", modelsPerRun))
	output.WriteString(fmt.Sprintf("Overall Success Rate:   %s\n",
		renderSuccessRate(overallSuccessRate(totalSuccessful, totalModels), 1, styles)))
	output.WriteString(fmt.Sprintf("Total Execution Time:   %.2f seconds\n", totalTime))

	return output.String()
}

// Helper functions

func totals(summaries []runstats.RunSummary) (models, successful int, execTime float64) {
	for _, summary := range summaries {
		models += summary.TotalModels
		successful += summary.SuccessfulModels
		execTime += summary.TotalExecutionTime
	}
	return models, successful, execTime
}

func overallSuccessRate(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(successful) / float64(total) * 100
}

func renderSuccessRate(rate float64, decimals int, styles help.Styles) string {
	rateStr := fmt.Sprintf("%.*f%%", decimals, rate)
	switch {
	case rate >= 100:
		return styles.Success.Render(rateStr)
	case rate < 50:
		return styles.Error.Render(rateStr)
	default:
		return rateStr
	}
}

func renderFailedCount(failed int, styles help.Styles) string {
	countStr := fmt.Sprintf("%d", failed)
	if failed > 0 {
		return styles.Error.Render(countStr)
	}
	return countStr
}
