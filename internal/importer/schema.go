package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TemplateFile is the top-level YAML structure for template import/export.
type TemplateFile struct {
	Templates []TemplateImport `yaml:"templates"`
}

// TemplateImport defines one template. ID is optional on import; when it
// matches an existing template, that template is replaced.
type TemplateImport struct {
	ID    string       `yaml:"id,omitempty"`
	Name  string       `yaml:"name"`
	Items []ItemImport `yaml:"items"`
}

// ItemImport defines one template item. JobType may be a job type id or
// name.
type ItemImport struct {
	Name      string   `yaml:"name"`
	JobType   string   `yaml:"job_type"`
	ManMonths *float64 `yaml:"man_months,omitempty"`
}

// LoadTemplateFile reads and parses a template YAML file.
func LoadTemplateFile(path string) (*TemplateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseTemplateFile(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// ParseTemplateFile decodes YAML, rejecting unknown keys.
func ParseTemplateFile(data []byte) (*TemplateFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f TemplateFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, err
	}
	return &f, nil
}

// Write encodes f as YAML.
func (f *TemplateFile) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding templates: %w", err)
	}
	return enc.Close()
}
