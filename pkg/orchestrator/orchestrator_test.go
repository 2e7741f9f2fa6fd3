package orchestrator_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
	"github.com/goliatone/go-changewizard/pkg/orchestrator"
)

func TestFormUsesEmbeddedDefaults(t *testing.T) {
	form, err := orchestrator.New().Form(context.Background())
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.OperationID != changes.CreateOperationID || form.Endpoint != "/changes" {
		t.Fatalf("unexpected form %s %s", form.OperationID, form.Endpoint)
	}
	if len(form.Sections) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(form.Sections))
	}

	var basics []string
	for _, field := range form.SectionFields(form.Sections[0]) {
		basics = append(basics, field.Name)
	}
	want := []string{
		changes.FieldTitle, changes.FieldCategory, changes.FieldSystemsAffected,
		changes.FieldPlannedStart, changes.FieldPlannedEnd, changes.FieldImplementer,
	}
	if diff := cmp.Diff(want, basics); diff != "" {
		t.Fatalf("basics fields mismatch (-want +got):\n%s", diff)
	}

	window, ok := form.Field(changes.FieldMaintenanceWindow)
	if !ok || window.Widget() != model.WidgetRadio || !window.Required {
		t.Fatalf("maintenance window not a required radio: %+v", window)
	}
	systems, _ := form.Field(changes.FieldSystemsAffected)
	if systems.Widget() != model.WidgetTags {
		t.Fatalf("systems widget = %q", systems.Widget())
	}
	backout, _ := form.Field(changes.FieldBackoutPlan)
	if backout.Required {
		t.Fatalf("backout plan should only be conditionally required")
	}
}

func TestFormFromFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.yaml")
	if err := os.WriteFile(path, changes.OpenAPI(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	form, err := orchestrator.New(orchestrator.WithSource(pkgopenapi.SourceFromFile(path))).Form(context.Background())
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if len(form.Fields) != 18 {
		t.Fatalf("expected 18 fields, got %d", len(form.Fields))
	}
}

func TestFormRequiresLayout(t *testing.T) {
	_, err := orchestrator.New(orchestrator.WithLayoutFS(nil)).Form(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no step layout") {
		t.Fatalf("expected missing layout error, got %v", err)
	}
}

func TestFormRejectsLayoutWithUnknownField(t *testing.T) {
	layout := fstest.MapFS{"steps.yaml": {Data: []byte(`operations:
  createChange:
    steps:
      - {id: basics, fields: [title, owner]}
`)}}
	_, err := orchestrator.New(orchestrator.WithLayoutFS(layout)).Form(context.Background())
	if err == nil || !strings.Contains(err.Error(), `unknown field "owner"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestFormUnknownOperation(t *testing.T) {
	_, err := orchestrator.New(orchestrator.WithOperationID("deleteChange")).Form(context.Background())
	if err == nil || !strings.Contains(err.Error(), `"deleteChange" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFormCustomDecoratorRunsAfterLayout(t *testing.T) {
	var steps int
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		steps = len(form.Sections)
		return nil
	})
	if _, err := orchestrator.New(orchestrator.WithUIDecorators(decorator)).Form(context.Background()); err != nil {
		t.Fatalf("form: %v", err)
	}
	if steps != 4 {
		t.Fatalf("decorator saw %d steps, want 4", steps)
	}
}
