package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/binding"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
	"github.com/goliatone/go-changewizard/pkg/submit"
	"github.com/goliatone/go-changewizard/pkg/wizard"
)

// Wizard is the controller surface the session drives. *wizard.Controller
// satisfies it.
type Wizard interface {
	Layout() wizard.Layout
	Form() binding.Form
	Snapshot() wizard.Snapshot
	Start(ctx context.Context) error
	NextStep(n int) (bool, error)
	PrevStep(n int) error
	FieldChanged(name, value string)
	EnterTag(kind wizard.TagKind) (bool, error)
	RemoveTag(kind wizard.TagKind, index int) error
	SaveDraft() error
	FlushAutosave() bool
	Submit(ctx context.Context) (submit.Result, error)
}

var _ Wizard = (*wizard.Controller)(nil)

// Action menu entries.
const (
	ActionNext         = "Next step"
	ActionBack         = "Previous step"
	ActionEdit         = "Edit this step"
	ActionRemoveSystem = "Remove a system"
	ActionRemoveLink   = "Remove a link"
	ActionSaveQuit     = "Save draft and quit"

	actionCancel = "Cancel"
	noneOption   = "(none)"
	menuMessage  = "What next?"
)

// DateTimeLayout is the accepted planned start/end format.
const DateTimeLayout = "2006-01-02T15:04"

// Run offers to restore a draft, then walks the steps until the record is
// created or the user saves and quits. Ctrl+C returns ErrAborted after any
// pending autosave is written.
func (s *Session) Run(ctx context.Context, w Wizard) (err error) {
	defer func() {
		if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
			if w.FlushAutosave() {
				s.logger.Debug("pending autosave flushed on abort")
			}
		}
	}()

	if err := w.Start(ctx); err != nil {
		return err
	}

	edit := true
	for {
		step, ok := w.Layout().Step(w.Snapshot().CurrentStep)
		if !ok {
			return fmt.Errorf("tui: no step %d", w.Snapshot().CurrentStep)
		}
		if edit {
			if err := s.promptStep(ctx, w, step); err != nil {
				return err
			}
		}

		action, err := s.chooseAction(ctx, w, step)
		if err != nil {
			return err
		}
		edit = false

		switch action {
		case ActionNext:
			if _, err := w.NextStep(step.Index + 1); err != nil {
				return err
			}
			edit = true
		case ActionBack:
			if err := w.PrevStep(step.Index - 1); err != nil {
				return err
			}
			edit = true
		case ActionEdit:
			edit = true
		case ActionRemoveSystem:
			if err := s.removeTag(ctx, w, wizard.TagSystems); err != nil {
				return err
			}
		case ActionRemoveLink:
			if err := s.removeTag(ctx, w, wizard.TagLinks); err != nil {
				return err
			}
		case ActionSaveQuit:
			if err := w.SaveDraft(); err != nil {
				return err
			}
			s.info("Draft saved. Run the wizard again to continue.")
			return nil
		default:
			done, retry, err := s.submit(ctx, w)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			edit = retry
		}
	}
}

func (s *Session) promptStep(ctx context.Context, w Wizard, step wizard.Step) error {
	for _, field := range step.Fields {
		if err := s.promptField(ctx, w, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, w Wizard, field model.Field) error {
	form := w.Form()
	label := displayLabel(form, field)
	help := displayHelp(field)

	switch field.Widget() {
	case model.WidgetTags:
		return s.promptTags(ctx, w, field, label, help)
	case model.WidgetSelect, model.WidgetRadio:
		return s.promptChoice(ctx, w, field, label, help)
	case model.WidgetCheckbox:
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: form.Bool(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		w.FieldChanged(field.Name, strconv.FormatBool(checked))
	case model.WidgetTextArea:
		value, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: form.Value(field.Name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		w.FieldChanged(field.Name, value)
	default:
		value, err := s.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     form.Value(field.Name),
			Help:        help,
			Placeholder: displayPlaceholder(field),
			Validator:   inputValidator(field),
		})
		if err != nil {
			return err
		}
		w.FieldChanged(field.Name, value)
	}
	return nil
}

func (s *Session) promptChoice(ctx context.Context, w Wizard, field model.Field, label, help string) error {
	form := w.Form()
	values := field.Options()
	labels := field.OptionLabels()

	current := form.Value(field.Name)
	if field.Widget() == model.WidgetRadio {
		current, _ = form.Checked(field.Name)
	}
	if !form.Required(field.Name) {
		values = append([]string{""}, values...)
	}

	options := make([]string, len(values))
	defaultIndex := 0
	for i, value := range values {
		options[i] = optionLabel(value, labels)
		if value == current {
			defaultIndex = i
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         help,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return nil
	}
	w.FieldChanged(field.Name, values[idx])
	return nil
}

func (s *Session) promptTags(ctx context.Context, w Wizard, field model.Field, label, help string) error {
	kind, ok := wizard.TagKindForField(field.Name)
	if !ok {
		return fmt.Errorf("tui: field %q is not a tag list", field.Name)
	}
	s.mu.Lock()
	s.printTagsLocked(kind)
	s.mu.Unlock()

	for {
		value, err := s.driver.Input(ctx, InputConfig{
			Message:     label,
			Help:        help,
			Placeholder: displayPlaceholder(field),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			w.FieldChanged(kind.Input(), "")
			return nil
		}
		w.FieldChanged(kind.Input(), value)
		if _, err := w.EnterTag(kind); err != nil && !errors.Is(err, wizard.ErrInvalidLink) {
			return err
		}
	}
}

func (s *Session) chooseAction(ctx context.Context, w Wizard, step wizard.Step) (string, error) {
	snapshot := w.Snapshot()
	total := w.Layout().Len()

	var actions []string
	if step.Index < total {
		actions = append(actions, ActionNext)
	}
	if step.Index > 1 {
		actions = append(actions, ActionBack)
	}
	actions = append(actions, ActionEdit)
	if step.Has(changes.FieldSystemsAffected) && len(snapshot.Systems) > 0 {
		actions = append(actions, ActionRemoveSystem)
	}
	if step.Has(changes.FieldLinks) && len(snapshot.Links) > 0 {
		actions = append(actions, ActionRemoveLink)
	}
	if step.Index == total {
		if disabled, label := s.submitControl(); !disabled {
			actions = append(actions, label)
		}
	}
	actions = append(actions, ActionSaveQuit)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: menuMessage,
		Options: actions,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return ActionEdit, nil
	}
	return actions[idx], nil
}

func (s *Session) removeTag(ctx context.Context, w Wizard, kind wizard.TagKind) error {
	s.mu.Lock()
	chips := append([]wizard.Chip(nil), s.tags[kind]...)
	s.mu.Unlock()
	if len(chips) == 0 {
		return nil
	}

	options := make([]string, 0, len(chips)+1)
	for _, chip := range chips {
		options = append(options, chip.Label)
	}
	options = append(options, actionCancel)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Remove which?",
		Options: options,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(chips) {
		return nil
	}
	return w.RemoveTag(kind, chips[idx].Index)
}

// submit reviews and sends the record. It reports whether the wizard is
// finished and whether the current step should be prompted again.
func (s *Session) submit(ctx context.Context, w Wizard) (bool, bool, error) {
	s.render(templateReview, map[string]any{
		"rule":  strings.Repeat(s.theme.Rule, 48),
		"title": w.Form().Value(changes.FieldTitle),
		"rows":  reviewRows(w),
	})
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Create this change record?", Default: true})
	if err != nil {
		return false, false, err
	}
	if !ok {
		return false, false, nil
	}

	result, err := w.Submit(ctx)
	var rejected *submit.RejectedError
	var network *submit.NetworkError
	switch {
	case err == nil:
		s.logger.Info("change record created", zap.String("change_id", result.ChangeID))
		return true, false, nil
	case errors.Is(err, wizard.ErrStepInvalid):
		return false, true, nil
	case errors.As(err, &rejected), errors.As(err, &network):
		s.logger.Warn("submission failed", zap.Error(err))
		return false, false, nil
	default:
		return false, false, err
	}
}

func reviewRows(w Wizard) []map[string]any {
	form := w.Form()
	snapshot := w.Snapshot()
	var rows []map[string]any
	for _, step := range w.Layout().Steps {
		for _, field := range step.Fields {
			var value string
			switch field.Widget() {
			case model.WidgetTags:
				if kind, ok := wizard.TagKindForField(field.Name); ok && kind == wizard.TagLinks {
					value = strings.Join(snapshot.Links, ", ")
				} else {
					value = strings.Join(snapshot.Systems, ", ")
				}
			case model.WidgetRadio:
				checked, _ := form.Checked(field.Name)
				value = optionLabel(checked, field.OptionLabels())
			case model.WidgetCheckbox:
				value = "No"
				if form.Bool(field.Name) {
					value = "Yes"
				}
			default:
				value = form.Value(field.Name)
				if labels := field.OptionLabels(); labels != nil && value != "" {
					value = optionLabel(value, labels)
				}
			}
			if strings.TrimSpace(value) == "" || value == noneOption {
				value = "-"
			}
			rows = append(rows, map[string]any{"label": field.Label, "value": value})
		}
	}
	return rows
}

func displayLabel(form binding.Form, field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	required := field.Required
	if form.Has(field.Name) {
		required = form.Required(field.Name)
	}
	if required {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	if help := strings.TrimSpace(field.UIHints["helpText"]); help != "" {
		return help
	}
	return strings.TrimSpace(field.Description)
}

func displayPlaceholder(field model.Field) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	return field.UIHints["placeholder"]
}

func optionLabel(value string, labels map[string]string) string {
	if value == "" {
		return noneOption
	}
	if label, ok := labels[value]; ok && label != "" {
		return label
	}
	return value
}

// inputValidator checks length limits, patterns and the date-time format
// while the user types. Empty input always passes; required fields are
// enforced when leaving the step.
func inputValidator(field model.Field) func(string) error {
	var checks []func(string) error
	if field.Widget() == model.WidgetDateTime {
		checks = append(checks, func(value string) error {
			if _, err := time.Parse(DateTimeLayout, value); err != nil {
				return errors.New("use the format YYYY-MM-DDTHH:MM")
			}
			return nil
		})
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMaxLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil {
				checks = append(checks, func(value string) error {
					if utf8.RuneCountInString(value) > limit {
						return fmt.Errorf("at most %d characters", limit)
					}
					return nil
				})
			}
		case model.ValidationRuleMinLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil {
				checks = append(checks, func(value string) error {
					if utf8.RuneCountInString(value) < limit {
						return fmt.Errorf("at least %d characters", limit)
					}
					return nil
				})
			}
		case model.ValidationRulePattern:
			if re, err := regexp.Compile(rule.Params["pattern"]); err == nil {
				checks = append(checks, func(value string) error {
					if !re.MatchString(value) {
						return errors.New("does not match the expected format")
					}
					return nil
				})
			}
		}
	}
	if len(checks) == 0 {
		return nil
	}
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		for _, check := range checks {
			if err := check(value); err != nil {
				return err
			}
		}
		return nil
	}
}
