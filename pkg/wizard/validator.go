package wizard

import (
	"strings"

	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
)

// ValidateCurrentStep checks the active step, marks failing controls
// invalid, clears passing ones, and alerts. Every rule runs even after one
// fails.
func (c *Controller) ValidateCurrentStep() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() bool {
	step, ok := c.layout.Step(c.state.CurrentStep)
	if !ok {
		return false
	}
	valid := true

	for _, field := range step.Fields {
		if !c.form.Required(field.Name) {
			continue
		}
		switch field.Widget() {
		case model.WidgetTags, model.WidgetCheckbox:
			continue
		case model.WidgetRadio:
			if _, checked := c.form.Checked(field.Name); !checked {
				c.form.MarkInvalid(field.Name)
				valid = false
			} else {
				c.form.ClearInvalid(field.Name)
			}
		default:
			if c.form.Value(field.Name) == "" {
				c.form.MarkInvalid(field.Name)
				valid = false
			} else {
				c.form.ClearInvalid(field.Name)
			}
		}
	}

	if step.Has(changes.FieldSystemsAffected) {
		if c.state.Systems.Len() == 0 {
			c.form.MarkInvalid(changes.ControlSystemsInput)
			c.view.Alert(MessageSystemsRequired)
			valid = false
		} else {
			c.form.ClearInvalid(changes.ControlSystemsInput)
		}
	}

	if step.Has(changes.FieldBackoutPlan) {
		blank := strings.TrimSpace(c.form.Value(changes.FieldBackoutPlan)) == ""
		if c.backoutRequiredLocked() && blank {
			c.form.MarkInvalid(changes.FieldBackoutPlan)
			c.view.Alert(MessageBackoutRequired)
			valid = false
		} else if !c.form.Required(changes.FieldBackoutPlan) || !blank {
			c.form.ClearInvalid(changes.FieldBackoutPlan)
		}
	}

	if !valid {
		c.view.Alert(MessageRequiredFields)
	}
	return valid
}
