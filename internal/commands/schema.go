package commands

import (
	"fmt"

	runstats "github.com/wolfeidau/dbt-runstats"
)

// SchemaCmd handles the schema command
type SchemaCmd struct{}

// Run executes the schema command
func (s *SchemaCmd) Run(globals *Globals) error {
	schema, err := runstats.SchemaForRunResults()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)
	return nil
}
