package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/binding"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/debounce"
	"github.com/goliatone/go-changewizard/pkg/model"
	"github.com/goliatone/go-changewizard/pkg/submit"
)

// DefaultAutosaveDelay is the quiet period after the last edit before the
// draft is saved.
const DefaultAutosaveDelay = time.Second

// DraftStore persists drafts. *draft.Store satisfies it.
type DraftStore interface {
	Save(d changes.Draft) error
	Load() (changes.Draft, bool, error)
	Clear() error
}

// State is the mutable wizard state.
type State struct {
	CurrentStep int
	Systems     *TagList
	Links       *TagList
}

// Snapshot is a copy of State safe to hand out.
type Snapshot struct {
	CurrentStep int
	Systems     []string
	Links       []string
	Submitting  bool
}

type submitPhase int

const (
	submitIdle submitPhase = iota
	submitInFlight
	submitDone
)

// Controller owns the wizard state and handles user events.
type Controller struct {
	layout    Layout
	form      binding.Form
	view      View
	drafts    DraftStore
	creator   submit.Creator
	confirmer Confirmer
	logger    *zap.Logger
	delay     time.Duration

	mu       sync.Mutex
	state    State
	phase    submitPhase
	autosave *debounce.Debouncer
}

// Option configures a Controller.
type Option func(*Controller)

// WithDrafts enables draft persistence.
func WithDrafts(store DraftStore) Option {
	return func(c *Controller) {
		c.drafts = store
	}
}

// WithCreator sets the submission backend.
func WithCreator(creator submit.Creator) Option {
	return func(c *Controller) {
		c.creator = creator
	}
}

// WithConfirmer sets who answers the restore question.
func WithConfirmer(confirmer Confirmer) Option {
	return func(c *Controller) {
		c.confirmer = confirmer
	}
}

// WithAutosaveDelay overrides DefaultAutosaveDelay.
func WithAutosaveDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Controller positioned on step 1. Nothing is rendered until
// Start or ShowStep is called.
func New(layout Layout, form binding.Form, view View, options ...Option) (*Controller, error) {
	if layout.Len() == 0 {
		return nil, errors.New("wizard: layout has no steps")
	}
	if form == nil {
		return nil, errors.New("wizard: form binding is required")
	}
	if view == nil {
		return nil, errors.New("wizard: view is required")
	}
	c := &Controller{
		layout: layout,
		form:   form,
		view:   view,
		logger: zap.NewNop(),
		delay:  DefaultAutosaveDelay,
		state: State{
			CurrentStep: 1,
			Systems:     NewTagList(TagSystems),
			Links:       NewTagList(TagLinks),
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.autosave = debounce.New(c.delay, c.autosaveDraft)
	return c, nil
}

// Layout returns the step layout.
func (c *Controller) Layout() Layout {
	return c.layout
}

// Form returns the form binding.
func (c *Controller) Form() binding.Form {
	return c.form
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		CurrentStep: c.state.CurrentStep,
		Systems:     c.state.Systems.Values(),
		Links:       c.state.Links.Values(),
		Submitting:  c.phase == submitInFlight,
	}
}

// Start offers to restore a saved draft, then shows step 1.
func (c *Controller) Start(ctx context.Context) error {
	if c.drafts != nil && c.confirmer != nil {
		if _, err := c.RestoreDraft(ctx); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderTagsLocked()
	c.impactChangedLocked()
	c.view.SetSubmitState(false, SubmitLabel)
	return c.showStepLocked(1)
}

// ShowStep activates step n without validating.
func (c *Controller) ShowStep(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showStepLocked(n)
}

func (c *Controller) showStepLocked(n int) error {
	if _, ok := c.layout.Step(n); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	c.view.ActivateStep(n)
	c.view.UpdateProgress(n)
	c.state.CurrentStep = n
	c.view.ScrollToTop()
	return nil
}

// NextStep validates the current step and, when it passes, saves the draft
// and shows step n. It reports whether navigation happened.
func (c *Controller) NextStep(n int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.layout.Step(n); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	if !c.validateLocked() {
		return false, nil
	}
	c.saveDraftLocked()
	return true, c.showStepLocked(n)
}

// PrevStep saves the draft and shows step n. It never validates.
func (c *Controller) PrevStep(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.layout.Step(n); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, n)
	}
	c.saveDraftLocked()
	return c.showStepLocked(n)
}

// FieldChanged records an edit and re-arms the shared autosave timer.
// Radio groups take the option value and checkboxes "true" or "false".
func (c *Controller) FieldChanged(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, known := c.layout.Field(name)
	switch {
	case known && field.Widget() == model.WidgetRadio:
		if value == "" {
			c.form.Uncheck(name)
		} else {
			c.form.Check(name, value)
		}
	case known && field.Widget() == model.WidgetCheckbox:
		c.form.SetBool(name, value == "true")
	default:
		c.form.SetValue(name, value)
	}

	if name == changes.FieldImpactLevel || c.layout.Conditional(name) {
		c.impactChangedLocked()
	}
	c.autosave.Trigger()
}

// ImpactChanged shows or hides the backout requirement for the current
// impact level.
func (c *Controller) ImpactChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.impactChangedLocked()
}

func (c *Controller) impactChangedLocked() {
	for name, rule := range c.layout.Conditions {
		if name != changes.FieldBackoutPlan {
			c.form.SetRequired(name, rule.Eval(formValues{c.form}))
		}
	}
	required := c.backoutRequiredLocked()
	c.form.SetVisible(changes.ControlBackoutRequired, required)
	c.form.SetRequired(changes.FieldBackoutPlan, required)
}

// backoutRequiredLocked applies the backout plan's required-when rule,
// falling back to the Medium/High impact policy when the schema has none.
func (c *Controller) backoutRequiredLocked() bool {
	if rule, ok := c.layout.Conditions[changes.FieldBackoutPlan]; ok {
		return rule.Eval(formValues{c.form})
	}
	return changes.RequiresBackout(c.form.Value(changes.FieldImpactLevel))
}

// formValues exposes form controls to rules. Radio groups read as their
// checked option.
type formValues struct {
	form binding.Form
}

func (v formValues) Value(name string) string {
	if value := v.form.Value(name); value != "" {
		return value
	}
	if option, ok := v.form.Checked(name); ok {
		return option
	}
	return ""
}

// EnterTag handles Enter in a tag input. It reports whether a tag was
// added. An invalid link is reported with an alert and ErrInvalidLink, and
// the input keeps its text.
func (c *Controller) EnterTag(kind TagKind) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.listLocked(kind)
	if err != nil {
		return false, err
	}
	input := kind.Input()
	added, err := list.Add(c.form.Value(input))
	if errors.Is(err, ErrInvalidLink) {
		c.view.Alert(MessageInvalidLink)
		return false, err
	}
	if !added {
		return false, nil
	}
	c.view.RenderTags(kind, list.Chips())
	c.form.SetValue(input, "")
	c.form.ClearInvalid(input)
	c.autosave.Trigger()
	return true, nil
}

// RemoveTag deletes the tag at index and saves the draft immediately.
func (c *Controller) RemoveTag(kind TagKind, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.listLocked(kind)
	if err != nil {
		return err
	}
	if err := list.Remove(index); err != nil {
		return fmt.Errorf("%w: %s[%d]", err, kind, index)
	}
	c.view.RenderTags(kind, list.Chips())
	c.saveDraftLocked()
	return nil
}

func (c *Controller) listLocked(kind TagKind) (*TagList, error) {
	switch kind {
	case TagSystems:
		return c.state.Systems, nil
	case TagLinks:
		return c.state.Links, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTagKind, kind)
	}
}

func (c *Controller) renderTagsLocked() {
	c.view.RenderTags(TagSystems, c.state.Systems.Chips())
	c.view.RenderTags(TagLinks, c.state.Links.Chips())
}

// Record snapshots every tracked field into a draft.
func (c *Controller) Record() changes.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordLocked()
}

func (c *Controller) recordLocked() changes.Draft {
	var d changes.Draft
	for _, name := range changes.ScalarFields {
		d.SetScalar(name, c.form.Value(name))
	}
	if window, ok := c.form.Checked(changes.FieldMaintenanceWindow); ok {
		d.MaintenanceWindow = &window
	}
	d.SystemsAffected = c.state.Systems.Values()
	d.Links = c.state.Links.Values()
	return d
}

// SaveDraft writes the current record to the draft store.
func (c *Controller) SaveDraft() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveDraftLocked()
}

func (c *Controller) saveDraftLocked() error {
	if c.drafts == nil {
		return nil
	}
	if err := c.drafts.Save(c.recordLocked()); err != nil {
		c.logger.Warn("draft save failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *Controller) autosaveDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == submitDone {
		return
	}
	_ = c.saveDraftLocked()
}

// FlushAutosave runs a pending autosave now.
func (c *Controller) FlushAutosave() bool {
	return c.autosave.Flush()
}

// AutosavePending reports whether an autosave is scheduled.
func (c *Controller) AutosavePending() bool {
	return c.autosave.Pending()
}

// Close cancels a pending autosave without running it.
func (c *Controller) Close() {
	c.autosave.Stop()
}

// RestoreDraft offers a stored draft to the user. Accepting repopulates
// every field and both tag lists; declining deletes the draft. It reports
// whether a draft was restored.
func (c *Controller) RestoreDraft(ctx context.Context) (bool, error) {
	if c.drafts == nil {
		return false, nil
	}
	d, found, err := c.drafts.Load()
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if c.confirmer == nil {
		return false, ErrNoConfirmer
	}

	ok, err := c.confirmer.Confirm(ctx, MessageRestorePrompt)
	if err != nil {
		return false, err
	}
	if !ok {
		if err := c.drafts.Clear(); err != nil {
			return false, err
		}
		c.logger.Info("saved draft discarded")
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyDraftLocked(d)
	c.logger.Info("saved draft restored",
		zap.Int("systems", c.state.Systems.Len()),
		zap.Int("links", c.state.Links.Len()),
	)
	return true, nil
}

func (c *Controller) applyDraftLocked(d changes.Draft) {
	d = d.Canonical()
	for _, name := range changes.ScalarFields {
		value, _ := d.Scalar(name)
		if name == changes.FieldStatus && value == "" {
			value = changes.DefaultStatus
		}
		c.form.SetValue(name, value)
	}
	if window, ok := d.MaintenanceWindowValue(); ok && window != "" {
		c.form.Check(changes.FieldMaintenanceWindow, window)
	} else {
		c.form.Uncheck(changes.FieldMaintenanceWindow)
	}
	c.state.Systems.Reset(d.SystemsAffected)
	c.state.Links.Reset(d.Links)
	c.renderTagsLocked()
	c.impactChangedLocked()
}
