// Package config loads and validates report definitions.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/models"
)

// File is a report definition file.
type File struct {
	// Workbook is used by reports that do not name their own.
	Workbook string `yaml:"workbook,omitempty"`
	// OutputDir prefixes relative report outputs.
	OutputDir string `yaml:"output_dir,omitempty"`
	// Theme applies to reports without a theme of their own.
	Theme models.Theme `yaml:"theme,omitempty"`
	// Size applies to reports without a size of their own.
	Size    models.Size     `yaml:"size,omitempty"`
	Reports []models.Report `yaml:"reports"`
}

// DefaultSize is the figure size used when neither the report nor the file sets one.
var DefaultSize = models.Size{Width: 160, Height: 90, Unit: "mm"}

// Load reads a YAML report file, fills defaults and validates it. Unknown
// keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML report file from memory.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	f.ApplyDefaults()
	if err := Validate(f.Reports); err != nil {
		return nil, err
	}
	return &f, nil
}

// ApplyDefaults copies file-level settings into reports that leave them unset.
func (f *File) ApplyDefaults() {
	size := f.Size
	if size.Width == 0 && size.Height == 0 {
		size = DefaultSize
	}
	for i := range f.Reports {
		r := &f.Reports[i]
		if r.Workbook == "" {
			r.Workbook = f.Workbook
		}
		r.Theme = r.Theme.Merge(f.Theme)
		if r.Size.Width == 0 && r.Size.Height == 0 {
			r.Size = size
		}
		if r.ZeroPolicy == "" {
			r.ZeroPolicy = models.ZeroKeep
		}
	}
}

// Select returns the reports whose names are listed, in file order. An empty
// list selects everything.
func (f *File) Select(names ...string) ([]models.Report, error) {
	if len(names) == 0 {
		return f.Reports, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []models.Report
	for _, r := range f.Reports {
		if want[r.Name] {
			out = append(out, r)
			delete(want, r.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("unknown report %q", n)
		}
	}
	return out, nil
}
