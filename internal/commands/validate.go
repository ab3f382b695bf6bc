package commands

import (
	"fmt"

	runstats "github.com/wolfeidau/dbt-runstats"
)

// ValidateCmd handles the validate command
type ValidateCmd struct {
	File string `arg:"" help:"Path to a run_results.json file" type:"path"`
}

// Run executes the validate command
func (v *ValidateCmd) Run(globals *Globals) error {
	result, err := runstats.ValidateResultsFile(v.File)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid {
		fmt.Printf("✓ File is valid: %s\n", v.File)
		return nil
	}

	fmt.Printf("✗ File has %d error(s):\n\n", len(result.Errors))
	for i, verr := range result.Errors {
		if verr.Path != "" {
			fmt.Printf("%d. [%s] %s\n", i+1, verr.Path, verr.Message)
		} else {
			fmt.Printf("%d. %s\n", i+1, verr.Message)
		}
	}
	fmt.Println()

	return fmt.Errorf("validation failed")
}
