package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-changewizard/pkg/render"
)

// LoadFS walks the provided filesystem and parses JSON/YAML layout files.
// When fsys is nil or no layout files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Layout)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single layout document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{operations: make(map[string]Layout)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Operation returns the layout for the supplied operation id.
func (s *Store) Operation(id string) (Layout, bool) {
	if s == nil {
		return Layout{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Empty reports whether the store holds any layouts.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for opID, raw := range doc.Operations {
		id := strings.TrimSpace(opID)
		if id == "" {
			return fmt.Errorf("uischema: file %s defines an empty operation id", source)
		}
		if _, exists := s.operations[id]; exists {
			return fmt.Errorf("uischema: duplicate operation %q (file %s)", id, source)
		}
		layout, err := normaliseLayout(raw, id, source)
		if err != nil {
			return err
		}
		s.operations[id] = layout
	}
	return nil
}

type documentFile struct {
	Operations map[string]layoutFile `json:"operations" yaml:"operations"`
}

type layoutFile struct {
	Title  string                 `json:"title" yaml:"title"`
	Steps  []StepConfig           `json:"steps" yaml:"steps"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseLayout(raw layoutFile, id, source string) (Layout, error) {
	if len(raw.Steps) == 0 {
		return Layout{}, fmt.Errorf("uischema: operation %q (file %s) defines no steps", id, source)
	}

	layout := Layout{
		OperationID: id,
		Source:      source,
		Title:       render.PlainText(raw.Title),
		Steps:       make([]StepConfig, 0, len(raw.Steps)),
		Fields:      make(map[string]FieldConfig, len(raw.Fields)),
	}

	stepIDs := make(map[string]struct{}, len(raw.Steps))
	placed := make(map[string]string)
	for idx, step := range raw.Steps {
		stepID := strings.TrimSpace(step.ID)
		if stepID == "" {
			return Layout{}, fmt.Errorf("uischema: operation %q (file %s) step %d has no id", id, source, idx+1)
		}
		if _, exists := stepIDs[stepID]; exists {
			return Layout{}, fmt.Errorf("uischema: operation %q (file %s) defines duplicate step id %q", id, source, stepID)
		}
		stepIDs[stepID] = struct{}{}
		if len(step.Fields) == 0 {
			return Layout{}, fmt.Errorf("uischema: operation %q (file %s) step %q lists no fields", id, source, stepID)
		}

		fields := make([]string, 0, len(step.Fields))
		for _, name := range step.Fields {
			name = strings.TrimSpace(name)
			if name == "" {
				return Layout{}, fmt.Errorf("uischema: operation %q (file %s) step %q contains an empty field name", id, source, stepID)
			}
			if prev, exists := placed[name]; exists {
				return Layout{}, fmt.Errorf("uischema: operation %q (file %s) field %q appears in steps %q and %q", id, source, name, prev, stepID)
			}
			placed[name] = stepID
			fields = append(fields, name)
		}

		layout.Steps = append(layout.Steps, StepConfig{
			ID:          stepID,
			Title:       render.PlainText(step.Title),
			Description: render.PlainText(step.Description),
			Icon:        render.PlainText(step.Icon),
			Fields:      fields,
		})
	}

	for name, cfg := range raw.Fields {
		key := strings.TrimSpace(name)
		if key == "" {
			return Layout{}, fmt.Errorf("uischema: operation %q (file %s) has a field override with an empty name", id, source)
		}
		if _, exists := layout.Fields[key]; exists {
			return Layout{}, fmt.Errorf("uischema: operation %q (file %s) defines duplicate field override %q", id, source, key)
		}
		if cfg.Widget != "" {
			if _, ok := knownWidgets[cfg.Widget]; !ok {
				return Layout{}, fmt.Errorf("uischema: operation %q (file %s) field %q uses unknown widget %q", id, source, key, cfg.Widget)
			}
		}
		layout.Fields[key] = cfg
	}

	return layout, nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
