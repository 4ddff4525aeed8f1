package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Instructions is the help document shown from the main menu.
type Instructions struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Section is one headed paragraph of the instructions.
type Section struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
}

// LoadInstructions loads the instructions document.
// Search order matches LoadSnake with instructions.yaml as the file name.
// A document without any text is rejected.
func LoadInstructions(customPath string) (Instructions, error) {
	data, source, err := readConfig(customPath, "instructions.yaml", defaultInstructionsYAML)
	if err != nil {
		return Instructions{}, err
	}

	var doc Instructions
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Instructions{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if doc.IsEmpty() {
		return Instructions{}, fmt.Errorf("config: %s: %w", source, errEmptyInstructions)
	}
	return doc, nil
}

var errEmptyInstructions = errors.New("instructions document is empty")

// IsEmpty reports whether the document has no readable text.
func (in Instructions) IsEmpty() bool {
	for _, s := range in.Sections {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}
