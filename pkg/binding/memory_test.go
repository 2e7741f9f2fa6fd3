package binding

import (
	"sync"
	"testing"
)

func newTestForm() *Memory {
	return NewMemory(
		Control{Name: "title", Required: true},
		Control{Name: "maintenance_window", Kind: KindRadio, Options: []string{"true", "false"}, Required: true},
		Control{Name: "email_copy", Kind: KindCheckbox},
		Control{Name: "backout-required", Kind: KindMarker, Hidden: true},
	)
}

func TestMemoryTextValues(t *testing.T) {
	form := newTestForm()
	form.SetValue("title", "Patch firewall")
	if got := form.Value("title"); got != "Patch firewall" {
		t.Fatalf("Value(title) = %q", got)
	}
	form.SetValue("missing", "x")
	if form.Has("missing") || form.Value("missing") != "" {
		t.Fatalf("unknown control should stay absent")
	}
}

func TestMemoryRadioGroup(t *testing.T) {
	form := newTestForm()
	if _, ok := form.Checked("maintenance_window"); ok {
		t.Fatalf("group should start unchecked")
	}
	if form.Check("maintenance_window", "maybe") {
		t.Fatalf("unknown option must not be checked")
	}
	if _, ok := form.Checked("maintenance_window"); ok {
		t.Fatalf("unknown option changed the group")
	}
	if !form.Check("maintenance_window", "false") {
		t.Fatalf("expected Check to succeed")
	}
	if got, ok := form.Checked("maintenance_window"); !ok || got != "false" {
		t.Fatalf("Checked = %q, %v", got, ok)
	}
	if form.Value("maintenance_window") != "" {
		t.Fatalf("radio groups have no text value")
	}
	form.Uncheck("maintenance_window")
	if _, ok := form.Checked("maintenance_window"); ok {
		t.Fatalf("Uncheck left a selection")
	}
}

func TestMemoryFlags(t *testing.T) {
	form := newTestForm()

	form.SetBool("email_copy", true)
	if !form.Bool("email_copy") {
		t.Fatalf("checkbox not set")
	}
	form.SetBool("title", true)
	if form.Bool("title") {
		t.Fatalf("text controls are not checkboxes")
	}

	if form.Visible("backout-required") {
		t.Fatalf("hidden marker reported visible")
	}
	form.SetVisible("backout-required", true)
	if !form.Visible("backout-required") {
		t.Fatalf("marker not shown")
	}

	form.SetRequired("title", false)
	if form.Required("title") {
		t.Fatalf("required flag not cleared")
	}

	form.MarkInvalid("title")
	if !form.Invalid("title") {
		t.Fatalf("title not marked invalid")
	}
	form.ClearInvalid("title")
	if form.Invalid("title") {
		t.Fatalf("title still invalid")
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	form := newTestForm()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				form.SetValue("title", "x")
				_ = form.Value("title")
				form.Check("maintenance_window", "true")
				form.MarkInvalid("title")
			}
		}()
	}
	wg.Wait()
}
