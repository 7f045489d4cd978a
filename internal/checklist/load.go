package checklist

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed data/checklist.json data/activities.json
var embedded embed.FS

// Format selects the decoder for dataset files.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	checklistBase  = "checklist"
	activitiesBase = "activities"
)

// ValidationError aggregates every integrity problem found in a dataset.
type ValidationError struct {
	Source   string
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = "  - " + p.Error()
	}
	return fmt.Sprintf("dataset %s has %d problem(s):\n%s", e.Source, len(e.Problems), strings.Join(msgs, "\n"))
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}

// LoadEmbedded returns the dataset compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	cb, err := embedded.ReadFile("data/checklist.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded checklist: %w", err)
	}
	ab, err := embedded.ReadFile("data/activities.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded activities: %w", err)
	}
	ds, err := Parse(cb, ab, FormatJSON)
	if err != nil {
		return nil, err
	}
	if errs := Validate(ds); len(errs) > 0 {
		return nil, &ValidationError{Source: "embedded", Problems: errs}
	}
	return ds, nil
}

// Load returns the dataset from dir, or the embedded dataset when dir is
// empty.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	return LoadDir(ctx, dir)
}

// LoadDir reads checklist.{json,yaml,yml} and activities.{json,yaml,yml}
// from dir, parses and validates them.
func LoadDir(ctx context.Context, dir string) (*Dataset, error) {
	checklistPath, err := findFile(dir, checklistBase)
	if err != nil {
		return nil, err
	}
	activitiesPath, err := findFile(dir, activitiesBase)
	if err != nil {
		return nil, err
	}

	var ds Dataset
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(checklistPath)
		if err != nil {
			return fmt.Errorf("reading checklist: %w", err)
		}
		return decode(data, formatOf(checklistPath), &ds.Checklist)
	})
	g.Go(func() error {
		data, err := os.ReadFile(activitiesPath)
		if err != nil {
			return fmt.Errorf("reading activities: %w", err)
		}
		return decode(data, formatOf(activitiesPath), &ds.Activities)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if errs := Validate(&ds); len(errs) > 0 {
		return nil, &ValidationError{Source: dir, Problems: errs}
	}
	return &ds, nil
}

// Parse decodes a checklist and an activity catalog. It does not validate.
func Parse(checklistData, activitiesData []byte, format Format) (*Dataset, error) {
	var ds Dataset
	if err := decode(checklistData, format, &ds.Checklist); err != nil {
		return nil, fmt.Errorf("parsing checklist: %w", err)
	}
	if err := decode(activitiesData, format, &ds.Activities); err != nil {
		return nil, fmt.Errorf("parsing activities: %w", err)
	}
	return &ds, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported dataset format %q", format)
	}
	return nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func findFile(dir, base string) (string, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("no %s.json, %s.yaml or %s.yml in %s", base, base, base, dir)
}

// isDatasetFile reports whether name is one of the files LoadDir reads.
func isDatasetFile(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
	default:
		return false
	}
	stem := strings.TrimSuffix(base, ext)
	return stem == checklistBase || stem == activitiesBase
}
