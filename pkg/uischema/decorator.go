package uischema

import (
	"fmt"

	pkgmodel "github.com/goliatone/go-changewizard/pkg/model"
)

// Decorator applies a step layout to a form model.
type Decorator struct {
	store *Store
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate assigns Sections from the layout steps and applies field
// overrides. A step or override naming a field the form does not have is an
// error.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	layout, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}

	index := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		index[field.Name] = i
	}

	sections := make([]pkgmodel.Section, 0, len(layout.Steps))
	for i, step := range layout.Steps {
		for _, name := range step.Fields {
			if _, ok := index[name]; !ok {
				return fmt.Errorf("uischema: operation %q step %q references unknown field %q", layout.OperationID, step.ID, name)
			}
		}
		sections = append(sections, pkgmodel.Section{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Order:       i + 1,
			Fields:      append([]string(nil), step.Fields...),
		})
		if step.Icon != "" {
			form.Metadata = ensureMetadata(form.Metadata)
			form.Metadata["step."+step.ID+".icon"] = step.Icon
		}
	}
	form.Sections = sections

	if layout.Title != "" {
		form.Metadata = ensureMetadata(form.Metadata)
		form.Metadata["layout.title"] = layout.Title
	}

	for name, cfg := range layout.Fields {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("uischema: operation %q overrides unknown field %q", layout.OperationID, name)
		}
		applyFieldConfig(&form.Fields[i], cfg)
	}
	return nil
}

func applyFieldConfig(field *pkgmodel.Field, cfg FieldConfig) {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Description != "" {
		field.Description = cfg.Description
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
		field.UIHints = ensureMetadata(field.UIHints)
		field.UIHints["placeholder"] = cfg.Placeholder
	}
	if cfg.HelpText != "" {
		field.UIHints = ensureMetadata(field.UIHints)
		field.UIHints["helpText"] = cfg.HelpText
	}
	if cfg.Widget != "" {
		field.UIHints = ensureMetadata(field.UIHints)
		field.UIHints["widget"] = cfg.Widget
	}
}

func ensureMetadata(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}
