package model

import "encoding/json"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// Widget identifiers understood by the terminal renderer.
const (
	WidgetText     = "text"
	WidgetDateTime = "datetime"
	WidgetSelect   = "select"
	WidgetRadio    = "radio"
	WidgetTextArea = "textarea"
	WidgetTags     = "tags"
	WidgetCheckbox = "checkbox"
)

// ValidationRule represents a single constraint applied to a field. Length
// limits encode their threshold in Params["value"] while pattern rules keep
// the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input of the change form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Widget returns the widget hint, falling back to text.
func (f Field) Widget() string {
	if widget := f.UIHints["widget"]; widget != "" {
		return widget
	}
	return WidgetText
}

// Options returns the enum values as strings in declaration order.
func (f Field) Options() []string {
	if len(f.Enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Enum))
	for _, value := range f.Enum {
		if s, ok := CanonicalizeExtensionValue(value); ok {
			out = append(out, s)
		}
	}
	return out
}

// OptionLabels decodes the labels metadata into value → display label.
func (f Field) OptionLabels() map[string]string {
	raw := f.Metadata["labels"]
	if raw == "" {
		return nil
	}
	var labels map[string]string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil
	}
	return labels
}

// Section groups fields into one wizard step.
type Section struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order"`
	Fields      []string `json:"fields"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Sections    []Section         `json:"sections,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a top-level field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// SectionFields resolves the fields of a section in layout order. Names that
// do not resolve are skipped.
func (m FormModel) SectionFields(section Section) []Field {
	out := make([]Field, 0, len(section.Fields))
	for _, name := range section.Fields {
		if field, ok := m.Field(name); ok {
			out = append(out, field)
		}
	}
	return out
}
