package commands

// Globals contains flags shared across all commands
type Globals struct {
}
