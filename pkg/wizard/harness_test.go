package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-changewizard/pkg/binding"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/draft"
	"github.com/goliatone/go-changewizard/pkg/orchestrator"
)

type recordingView struct {
	mu             sync.Mutex
	active         int
	progress       int
	scrolls        int
	tags           map[TagKind][]Chip
	alerts         []string
	submitDisabled bool
	submitLabel    string
	secret         string
	navigated      string
}

func newRecordingView() *recordingView {
	return &recordingView{tags: make(map[TagKind][]Chip)}
}

func (v *recordingView) ActivateStep(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.active = n
}

func (v *recordingView) UpdateProgress(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = n
}

func (v *recordingView) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolls++
}

func (v *recordingView) RenderTags(kind TagKind, chips []Chip) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tags[kind] = chips
}

func (v *recordingView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *recordingView) SetSubmitState(disabled bool, label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitDisabled = disabled
	v.submitLabel = label
}

func (v *recordingView) ShowSecretWarning(detail string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.secret = detail
}

func (v *recordingView) Navigate(path string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.navigated = path
}

func (v *recordingView) Alerts() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.alerts...)
}

func (v *recordingView) resetAlerts() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = nil
}

// countingStore wraps a draft.Store and counts saves.
type countingStore struct {
	*draft.Store
	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(d changes.Draft) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(d)
}

func (s *countingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type harness struct {
	ctrl    *Controller
	form    *binding.Memory
	view    *recordingView
	storage *draft.MemoryStorage
	store   *countingStore
}

func testLayout(t *testing.T) Layout {
	t.Helper()
	form, err := orchestrator.New().Form(context.Background())
	if err != nil {
		t.Fatalf("form model: %v", err)
	}
	layout, err := LayoutFromModel(form)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return layout
}

func newHarness(t *testing.T, storage *draft.MemoryStorage, options ...Option) *harness {
	t.Helper()
	if storage == nil {
		storage = draft.NewMemoryStorage()
	}
	layout := testLayout(t)
	h := &harness{
		form:    NewMemoryForm(layout),
		view:    newRecordingView(),
		storage: storage,
		store:   &countingStore{Store: draft.NewStore(storage)},
	}
	opts := append([]Option{WithDrafts(h.store), WithAutosaveDelay(20 * time.Millisecond)}, options...)
	ctrl, err := New(layout, h.form, h.view, opts...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	t.Cleanup(ctrl.Close)
	h.ctrl = ctrl
	return h
}

func (h *harness) addTag(t *testing.T, kind TagKind, value string) {
	t.Helper()
	h.ctrl.FieldChanged(kind.Input(), value)
	if _, err := h.ctrl.EnterTag(kind); err != nil {
		t.Fatalf("EnterTag(%s, %q): %v", kind, value, err)
	}
}

func (h *harness) fillBasics(t *testing.T) {
	t.Helper()
	h.ctrl.FieldChanged(changes.FieldTitle, "Upgrade database cluster")
	h.ctrl.FieldChanged(changes.FieldCategory, changes.CategoryApplication)
	h.ctrl.FieldChanged(changes.FieldImplementer, "dana")
	h.addTag(t, TagSystems, "db-01")
	h.addTag(t, TagSystems, "db-02")
}

func (h *harness) fillImpact(impact, backout string) {
	h.ctrl.FieldChanged(changes.FieldImpactLevel, impact)
	h.ctrl.FieldChanged(changes.FieldUserImpact, changes.UserImpactSome)
	h.ctrl.FieldChanged(changes.FieldMaintenanceWindow, changes.MaintenanceWindowYes)
	h.ctrl.FieldChanged(changes.FieldBackoutPlan, backout)
}

func (h *harness) fillAll(t *testing.T) {
	t.Helper()
	h.fillBasics(t)
	h.fillImpact(changes.ImpactLow, "")
	h.ctrl.FieldChanged(changes.FieldWhatChanged, "Applied minor version upgrade")
	h.addTag(t, TagLinks, "https://tickets.example/CHG-1")
}
