package tui

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-changewizard/pkg/model"
)

func TestResolveThemeVariants(t *testing.T) {
	base, err := ResolveTheme("")
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	if base.Variant != VariantDefault || base.ErrorPrefix != "✗" || base.StepDone != "●" {
		t.Fatalf("unexpected default theme: %+v", base)
	}

	plain, err := ResolveTheme(VariantPlain)
	if err != nil {
		t.Fatalf("resolve plain: %v", err)
	}
	want := Theme{
		Name:         ThemeName,
		Variant:      VariantPlain,
		PromptPrefix: "?",
		InfoPrefix:   ">",
		ErrorPrefix:  "!",
		ChipOpen:     "[",
		ChipClose:    "]",
		StepDone:     "#",
		StepTodo:     "-",
		Rule:         "-",
	}
	if diff := cmp.Diff(want, plain); diff != "" {
		t.Fatalf("plain theme mismatch (-want +got):\n%s", diff)
	}

	if _, err := ResolveTheme("neon"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestCatalogSelectsCustomManifest(t *testing.T) {
	catalog, err := NewCatalog(&theme.Manifest{
		Name:    "ops",
		Version: "0.1.0",
		Tokens: map[string]string{
			"error.prefix": "ERR",
		},
		Variants: map[string]theme.Variant{
			"loud": {Tokens: map[string]string{"error.prefix": "ERROR!"}},
		},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	selection, err := catalog.Select("ops", "loud")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	got := ThemeFromSelection(selection)
	if got.ErrorPrefix != "ERROR!" {
		t.Fatalf("variant token not applied: %q", got.ErrorPrefix)
	}
	if got.ChipOpen != "[" {
		t.Fatalf("missing tokens should fall back, got %q", got.ChipOpen)
	}

	if _, err := catalog.Select(ThemeName, ""); err == nil {
		t.Fatalf("built-in theme is not registered in a custom catalog")
	}
}

func TestInputValidatorLimits(t *testing.T) {
	cases := []struct {
		name   string
		widget string
		value  string
		ok     bool
	}{
		{"empty datetime", "datetime", "", true},
		{"valid datetime", "datetime", "2026-03-01T09:30", true},
		{"invalid datetime", "datetime", "03/01/2026", false},
		{"plain text", "text", "anything", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field := fieldWithWidget(tc.widget)
			validate := inputValidator(field)
			if validate == nil {
				if !tc.ok {
					t.Fatalf("expected a validator")
				}
				return
			}
			if err := validate(tc.value); (err == nil) != tc.ok {
				t.Fatalf("validate(%q) = %v, want ok=%v", tc.value, err, tc.ok)
			}
		})
	}
}

func TestInputValidatorMaxLength(t *testing.T) {
	field := fieldWithWidget("text")
	field.Validations = []model.ValidationRule{{
		Kind:   model.ValidationRuleMaxLength,
		Params: map[string]string{"value": "5"},
	}}
	validate := inputValidator(field)
	if err := validate("short"); err != nil {
		t.Fatalf("5 runes should pass: %v", err)
	}
	if err := validate("żółwie"); err == nil {
		t.Fatalf("6 runes should fail")
	}
}

func fieldWithWidget(widget string) model.Field {
	return model.Field{Name: "f", Label: "F", UIHints: map[string]string{"widget": widget}}
}
