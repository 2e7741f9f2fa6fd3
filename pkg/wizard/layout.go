package wizard

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-changewizard/pkg/binding"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
	"github.com/goliatone/go-changewizard/pkg/rules"
)

// requiredWhenKey is the field metadata holding a conditional requirement.
const requiredWhenKey = "required-when"

// Step is one wizard panel. Index is 1-based.
type Step struct {
	Index       int
	ID          string
	Title       string
	Description string
	Icon        string
	Fields      []model.Field
}

// Has reports whether the step contains the named field.
func (s Step) Has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Layout is the ordered list of steps.
type Layout struct {
	Title string
	Steps []Step
	// Conditions maps a field to the rule that makes it required.
	Conditions map[string]*rules.Rule
}

// LayoutFromModel converts a form model with sections into a Layout.
func LayoutFromModel(form model.FormModel) (Layout, error) {
	if len(form.Sections) == 0 {
		return Layout{}, errors.New("wizard: form model has no steps")
	}
	layout := Layout{Title: form.Metadata["layout.title"]}
	for i, section := range form.Sections {
		fields := form.SectionFields(section)
		if len(fields) != len(section.Fields) {
			return Layout{}, fmt.Errorf("wizard: step %q references fields missing from the form", section.ID)
		}
		layout.Steps = append(layout.Steps, Step{
			Index:       i + 1,
			ID:          section.ID,
			Title:       section.Title,
			Description: section.Description,
			Icon:        form.Metadata["step."+section.ID+".icon"],
			Fields:      fields,
		})
		for _, f := range fields {
			expr := f.Metadata[requiredWhenKey]
			if expr == "" {
				continue
			}
			rule, err := rules.Parse(expr)
			if err != nil {
				return Layout{}, fmt.Errorf("wizard: field %q required-when: %w", f.Name, err)
			}
			if layout.Conditions == nil {
				layout.Conditions = make(map[string]*rules.Rule)
			}
			layout.Conditions[f.Name] = rule
		}
	}
	return layout, nil
}

// Conditional reports whether any required-when rule reads field.
func (l Layout) Conditional(field string) bool {
	for _, rule := range l.Conditions {
		if rule.DependsOn(field) {
			return true
		}
	}
	return false
}

// Step returns step n.
func (l Layout) Step(n int) (Step, bool) {
	if n < 1 || n > len(l.Steps) {
		return Step{}, false
	}
	return l.Steps[n-1], true
}

// Len returns the number of steps.
func (l Layout) Len() int {
	return len(l.Steps)
}

// StepOf returns the index of the step holding field, or 0.
func (l Layout) StepOf(field string) int {
	for _, step := range l.Steps {
		if step.Has(field) {
			return step.Index
		}
	}
	return 0
}

// Field looks up a field across all steps.
func (l Layout) Field(name string) (model.Field, bool) {
	for _, step := range l.Steps {
		for _, f := range step.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return model.Field{}, false
}

// Controls declares the binding controls the layout needs: one per field,
// an input per tag list, and the hidden backout marker.
func (l Layout) Controls() []binding.Control {
	var controls []binding.Control
	for _, step := range l.Steps {
		for _, f := range step.Fields {
			switch f.Widget() {
			case model.WidgetTags:
				if kind, ok := TagKindForField(f.Name); ok {
					controls = append(controls, binding.Control{Name: kind.Input()})
				}
			case model.WidgetRadio:
				controls = append(controls, binding.Control{
					Name:     f.Name,
					Kind:     binding.KindRadio,
					Options:  f.Options(),
					Required: f.Required,
				})
			case model.WidgetCheckbox:
				controls = append(controls, binding.Control{Name: f.Name, Kind: binding.KindCheckbox})
			default:
				value, _ := f.Default.(string)
				controls = append(controls, binding.Control{Name: f.Name, Required: f.Required, Value: value})
			}
		}
	}
	controls = append(controls, binding.Control{
		Name:   changes.ControlBackoutRequired,
		Kind:   binding.KindMarker,
		Hidden: true,
	})
	return controls
}

// NewMemoryForm returns an in-memory binding seeded from the layout.
func NewMemoryForm(l Layout) *binding.Memory {
	return binding.NewMemory(l.Controls()...)
}
