package binding

import (
	"slices"
	"sync"
)

type control struct {
	kind     Kind
	options  []string
	value    string
	checked  bool
	required bool
	invalid  bool
	visible  bool
}

// Memory is an in-memory Form. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	controls map[string]*control
}

var _ Form = (*Memory)(nil)

// NewMemory creates a Memory holding the supplied controls. Later
// declarations of the same name replace earlier ones.
func NewMemory(controls ...Control) *Memory {
	m := &Memory{controls: make(map[string]*control, len(controls))}
	for _, c := range controls {
		m.Add(c)
	}
	return m
}

// Add declares a control.
func (m *Memory) Add(c Control) {
	if c.Name == "" {
		return
	}
	kind := c.Kind
	if kind == "" {
		kind = KindText
	}
	entry := &control{
		kind:     kind,
		options:  slices.Clone(c.Options),
		required: c.Required,
		visible:  !c.Hidden,
	}
	if kind != KindRadio || slices.Contains(c.Options, c.Value) {
		entry.value = c.Value
	}
	m.mu.Lock()
	m.controls[c.Name] = entry
	m.mu.Unlock()
}

// Has reports whether a control named name was declared.
func (m *Memory) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.controls[name]
	return ok
}

// Value returns a control's text. Radio groups read as "", use Checked.
func (m *Memory) Value(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.controls[name]; ok && c.kind != KindRadio {
		return c.value
	}
	return ""
}

// SetValue replaces a non-radio control's text.
func (m *Memory) SetValue(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controls[name]; ok && c.kind != KindRadio {
		c.value = value
	}
}

// Checked returns the selected option of a radio group.
func (m *Memory) Checked(group string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[group]
	if !ok || c.kind != KindRadio || c.value == "" {
		return "", false
	}
	return c.value, true
}

// Check selects option in a radio group. Unknown options are rejected.
func (m *Memory) Check(group, option string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.controls[group]
	if !ok || c.kind != KindRadio || !slices.Contains(c.options, option) {
		return false
	}
	c.value = option
	return true
}

// Uncheck clears a radio group's selection.
func (m *Memory) Uncheck(group string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controls[group]; ok && c.kind == KindRadio {
		c.value = ""
	}
}

// Bool reports whether a checkbox is ticked.
func (m *Memory) Bool(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[name]
	return ok && c.kind == KindCheckbox && c.checked
}

// SetBool ticks or clears a checkbox.
func (m *Memory) SetBool(name string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controls[name]; ok && c.kind == KindCheckbox {
		c.checked = value
	}
}

// Required reports the control's required flag.
func (m *Memory) Required(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[name]
	return ok && c.required
}

// SetRequired sets the control's required flag.
func (m *Memory) SetRequired(name string, required bool) {
	m.withControl(name, func(c *control) { c.required = required })
}

// MarkInvalid flags a control as failing validation.
func (m *Memory) MarkInvalid(name string) {
	m.withControl(name, func(c *control) { c.invalid = true })
}

// ClearInvalid removes the validation flag.
func (m *Memory) ClearInvalid(name string) {
	m.withControl(name, func(c *control) { c.invalid = false })
}

// Invalid reports whether the control is flagged.
func (m *Memory) Invalid(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[name]
	return ok && c.invalid
}

// SetVisible shows or hides a control.
func (m *Memory) SetVisible(name string, visible bool) {
	m.withControl(name, func(c *control) { c.visible = visible })
}

// Visible reports whether the control is shown.
func (m *Memory) Visible(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controls[name]
	return ok && c.visible
}

func (m *Memory) withControl(name string, fn func(*control)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controls[name]; ok {
		fn(c)
	}
}
