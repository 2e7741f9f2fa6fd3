package binding

// Form is the set of control operations the wizard needs. Operations on a
// control that does not exist are no-ops; readers return zero values.
type Form interface {
	// Has reports whether a control with that name exists.
	Has(name string) bool

	Value(name string) string
	SetValue(name, value string)

	// Checked returns the selected option of a radio group.
	Checked(group string) (string, bool)
	// Check selects option in group. It returns false, leaving the group
	// untouched, when the option does not exist.
	Check(group, option string) bool
	Uncheck(group string)

	Bool(name string) bool
	SetBool(name string, value bool)

	Required(name string) bool
	SetRequired(name string, required bool)

	MarkInvalid(name string)
	ClearInvalid(name string)
	Invalid(name string) bool

	SetVisible(name string, visible bool)
	Visible(name string) bool
}

// Kind identifies a control's input type.
type Kind string

const (
	KindText     Kind = "text"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	// KindMarker is a display-only element such as a required indicator.
	KindMarker Kind = "marker"
)

// Control declares one control for Memory.
type Control struct {
	Name     string
	Kind     Kind
	Options  []string
	Required bool
	Hidden   bool
	Value    string
}
