package uischema

// Store keeps the parsed layouts keyed by operation id. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Layout
}

// Layout describes the wizard steps for one OpenAPI operation.
type Layout struct {
	OperationID string
	Source      string
	Title       string
	Steps       []StepConfig
	Fields      map[string]FieldConfig
}

// StepConfig lists the fields of one wizard step in prompt order.
type StepConfig struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Fields      []string `json:"fields" yaml:"fields"`
}

// FieldConfig customises how a field is presented.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string `json:"widget,omitempty" yaml:"widget,omitempty"`
}

var knownWidgets = map[string]struct{}{
	"text":     {},
	"datetime": {},
	"select":   {},
	"radio":    {},
	"textarea": {},
	"tags":     {},
	"checkbox": {},
}
