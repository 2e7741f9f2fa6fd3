package uischema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-changewizard/pkg/model"
	"github.com/goliatone/go-changewizard/pkg/uischema"
)

func sampleForm() pkgmodel.FormModel {
	return pkgmodel.FormModel{
		OperationID: "createChange",
		Endpoint:    "/changes",
		Method:      "POST",
		Fields: []pkgmodel.Field{
			{Name: "impact_level", Label: "Impact level", UIHints: map[string]string{"widget": "select"}},
			{Name: "title", Label: "Title"},
		},
	}
}

func TestDecoratorAssignsSectionsAndOverrides(t *testing.T) {
	doc := `operations:
  createChange:
    title: New change
    steps:
      - {id: basics, title: Basics, icon: "1", fields: [title]}
      - {id: impact, title: Impact, fields: [impact_level]}
    fields:
      impact_level: {widget: radio, helpText: Pick one}
      title: {label: Summary, placeholder: Short summary}
`
	store, err := uischema.Parse([]byte(doc), "layout.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	form := sampleForm()
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	want := []pkgmodel.Section{
		{ID: "basics", Title: "Basics", Order: 1, Fields: []string{"title"}},
		{ID: "impact", Title: "Impact", Order: 2, Fields: []string{"impact_level"}},
	}
	if diff := cmp.Diff(want, form.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}

	impact, _ := form.Field("impact_level")
	if impact.Widget() != "radio" || impact.UIHints["helpText"] != "Pick one" {
		t.Fatalf("impact overrides not applied: %+v", impact.UIHints)
	}
	title, _ := form.Field("title")
	if title.Label != "Summary" || title.Placeholder != "Short summary" {
		t.Fatalf("title overrides not applied: %+v", title)
	}
	if form.Metadata["layout.title"] != "New change" || form.Metadata["step.basics.icon"] != "1" {
		t.Fatalf("form metadata = %v", form.Metadata)
	}
}

func TestDecoratorRejectsUnknownField(t *testing.T) {
	doc := `operations:
  createChange:
    steps:
      - {id: basics, fields: [title, owner]}
`
	store, err := uischema.Parse([]byte(doc), "layout.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form := sampleForm()
	err = uischema.NewDecorator(store).Decorate(&form)
	if err == nil || !strings.Contains(err.Error(), `unknown field "owner"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestDecoratorNoopWithoutLayout(t *testing.T) {
	form := sampleForm()
	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if form.Sections != nil {
		t.Fatalf("expected no sections, got %v", form.Sections)
	}
}
