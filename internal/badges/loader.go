package badges

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk structure of the badge rules file.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// Loader handles loading and parsing of the badge rules file.
type Loader struct {
	filePath string
}

// NewLoader creates a badge rules loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the rules file. Entries without a badge label
// or attribute key are skipped.
func (l *Loader) Load() ([]Rule, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read badge rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse badge rules yaml: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for _, rule := range file.Rules {
		if rule.Badge == "" || rule.Attribute == "" {
			continue
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
