package changewizard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/changes"
)

func TestLayoutUsesEmbeddedDefinitions(t *testing.T) {
	layout, err := Layout(context.Background(), Sources{}, zap.NewNop())
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if layout.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", layout.Len())
	}
	if got := layout.StepOf(changes.FieldBackoutPlan); got != 2 {
		t.Fatalf("backout plan on step %d, want 2", got)
	}
}

func TestLayoutFromCustomSources(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "changes.yaml")
	if err := os.WriteFile(docPath, changes.OpenAPI(), 0o600); err != nil {
		t.Fatalf("write openapi: %v", err)
	}
	layoutDir := filepath.Join(dir, "ui")
	if err := os.Mkdir(layoutDir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := `operations:
  createChange:
    title: Quick change
    steps:
      - id: everything
        title: Everything
        fields: [title, category, systems_affected, planned_start, planned_end, implementer,
          impact_level, user_impact, maintenance_window, backout_plan, what_changed, ticket_id,
          links, status, outcome_notes, post_change_issues, email_copy, confirm_no_secrets]
`
	if err := os.WriteFile(filepath.Join(layoutDir, "steps.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	layout, err := Layout(context.Background(), Sources{OpenAPI: docPath, LayoutDir: layoutDir}, zap.NewNop())
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if layout.Len() != 1 || layout.Title != "Quick change" {
		t.Fatalf("unexpected layout %q with %d steps", layout.Title, layout.Len())
	}
}

func TestSourcesRejectMissingLayoutDir(t *testing.T) {
	_, err := Sources{LayoutDir: filepath.Join(t.TempDir(), "missing")}.Options(zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "layout dir") {
		t.Fatalf("expected layout dir error, got %v", err)
	}
}

func TestSourcesRejectInvalidURL(t *testing.T) {
	if _, err := (Sources{OpenAPI: "https://bad host/openapi.yaml"}).Options(zap.NewNop()); err == nil {
		t.Fatalf("expected invalid url error")
	}
}
