package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	runstats "github.com/wolfeidau/dbt-runstats"
	"github.com/wolfeidau/dbt-runstats/internal/reporting"
)

// CountCmd handles the count command
type CountCmd struct {
	Path      string `arg:"" optional:"" default:"run_results.json" help:"Path to a run_results.json file or a folder containing them"`
	JSON      bool   `help:"Output results as JSON"`
	Recursive bool   `help:"Search recursively in subdirectories" short:"r"`
	Verbose   bool   `help:"Show detailed processing information" short:"v"`
	Config    string `help:"Path to a settings file (YAML or JSON)" type:"path"`
}

// Run executes the count command
func (c *CountCmd) Run(globals *Globals) error {
	if c.Config != "" {
		settings, err := runstats.LoadSettings(c.Config)
		if err != nil {
			log.Error().Err(err).Str("config", c.Config).Msg("failed to load settings")
			return fmt.Errorf("failed to load settings: %w", err)
		}
		c.applySettings(settings)
	}

	files, err := runstats.DiscoverRunResults(c.Path)
	if err != nil {
		// A non-JSON file argument is a warning; an invalid path is an
		// error. Either way discovery yielded nothing and the aggregate
		// failure below decides the exit status.
		if errors.Is(err, runstats.ErrNotJSON) {
			fmt.Printf("Warning: %v\n", err)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
	}

	if len(files) == 0 {
		if err == nil {
			fmt.Printf("No run_results.json files found in %s\n", c.Path)
		}
		return fmt.Errorf("no run_results.json files found")
	}

	if c.Verbose {
		fmt.Printf("Found %d file(s) to process:\n", len(files))
		for _, file := range files {
			fmt.Printf("  - %s\n", file)
		}
		fmt.Println()
	}

	// Per-file failures are isolated: one bad file never aborts the rest.
	summaries := make([]runstats.RunSummary, 0, len(files))
	for _, file := range files {
		if c.Verbose {
			fmt.Printf("Processing: %s\n", file)
		}

		doc, err := runstats.LoadRunResults(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		summaries = append(summaries, runstats.Summarize(file, doc))
	}

	if len(summaries) == 0 {
		return fmt.Errorf("no valid run_results.json files could be processed")
	}

	if c.JSON {
		return reporting.PrintJSON(summaries)
	}

	return reporting.PrintReport(summaries)
}

// applySettings fills in flags left at their defaults from the settings
// file; explicit flags win.
func (c *CountCmd) applySettings(settings *runstats.Settings) {
	if settings.Path != "" && c.Path == "run_results.json" {
		c.Path = settings.Path
	}
	if settings.JSON != nil && !c.JSON {
		c.JSON = *settings.JSON
	}
	if settings.Recursive != nil && !c.Recursive {
		c.Recursive = *settings.Recursive
	}
	if settings.Verbose != nil && !c.Verbose {
		c.Verbose = *settings.Verbose
	}
}
