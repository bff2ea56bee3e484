package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tower/core/scheduler"
)

// FormatOf derives the file format from a path extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported scenario format: %s", filepath.Ext(path))
	}
}

// Load reads a JSON or YAML scenario file.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh, format)
}

// Decode reads a scenario from r. Malformed documents are reported as
// invalid scenarios.
func Decode(r io.Reader, format string) (*File, error) {
	var f File
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", scheduler.ErrInvalidScenario, err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %v", scheduler.ErrInvalidScenario, err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &f, nil
}

// Encode writes the scenario to w.
func Encode(w io.Writer, f *File, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Save writes the scenario to path, picking the format from its extension.
func Save(path string, f *File) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fh, f, format); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
