package runstats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"mvdan.cc/sh/v3/shell"
)

// Settings provides file-based defaults for the count command. Boolean
// fields are pointers so an absent key can be told apart from an explicit
// false; command-line flags take precedence over values set here.
type Settings struct {
	Path      string `yaml:"path,omitempty" json:"path,omitempty"`
	JSON      *bool  `yaml:"json,omitempty" json:"json,omitempty"`
	Recursive *bool  `yaml:"recursive,omitempty" json:"recursive,omitempty"`
	Verbose   *bool  `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// LoadSettings loads tool settings from a YAML or JSON file.
// The file format is detected by the file extension (.yaml, .yml, or .json).
// Environment variables in the file are expanded using ${VAR} or $VAR
// syntax. Supports shell-style default values: ${VAR:-default}
func LoadSettings(filePath string) (*Settings, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	expandedStr, err := shell.Expand(string(data), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}
	expandedData := []byte(expandedStr)

	var settings Settings
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expandedData, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(expandedData, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file extension: %s (expected .yaml, .yml, or .json)", ext)
	}

	return &settings, nil
}
