package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportFile is the top-level structure of a plan import file. A bare list
// of plans is accepted too, which is what "plans list -o json|yaml" writes.
type ImportFile struct {
	Plans []PlanImport `json:"plans" yaml:"plans"`
}

// PlanImport is one plan in an import file. Unknown keys such as id,
// index and created are ignored.
type PlanImport struct {
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time,omitempty" yaml:"time,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Budget   Amount `json:"budget,omitempty" yaml:"budget,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Amount is a budget written either as a number or as a string.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*a = Amount(str)
		return nil
	}
	*a = Amount(s)
	return nil
}

// LoadFile reads a .json file with encoding/json and anything else as YAML.
func LoadFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (*ImportFile, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var plans []PlanImport
		if err := json.Unmarshal(data, &plans); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &ImportFile{Plans: plans}, nil
	}
	var f ImportFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}

func parseYAML(data []byte) (*ImportFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if len(doc.Content) == 0 {
		return &ImportFile{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var plans []PlanImport
		if err := root.Decode(&plans); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &ImportFile{Plans: plans}, nil
	}
	var f ImportFile
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &f, nil
}
