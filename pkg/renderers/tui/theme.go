package tui

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeName identifies the built-in terminal theme manifest.
const ThemeName = "changewizard-terminal"

// Variant names shipped with the built-in manifest. VariantDefault uses the
// base tokens.
const (
	VariantDefault = "default"
	VariantPlain   = "plain"
)

// Token keys read from a manifest.
const (
	tokenPromptPrefix = "prompt.prefix"
	tokenInfoPrefix   = "info.prefix"
	tokenErrorPrefix  = "error.prefix"
	tokenChipOpen     = "chip.open"
	tokenChipClose    = "chip.close"
	tokenStepDone     = "progress.done"
	tokenStepTodo     = "progress.todo"
	tokenRule         = "rule"
)

// Theme captures the glyphs the session prints around messages, chips and
// the progress bar.
type Theme struct {
	Name         string
	Variant      string
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
	ChipOpen     string
	ChipClose    string
	StepDone     string
	StepTodo     string
	Rule         string
}

// DefaultManifest describes the built-in terminal theme. The plain variant
// sticks to ASCII for terminals without Unicode fonts.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			tokenPromptPrefix: "?",
			tokenInfoPrefix:   "›",
			tokenErrorPrefix:  "✗",
			tokenChipOpen:     "[",
			tokenChipClose:    "]",
			tokenStepDone:     "●",
			tokenStepTodo:     "○",
			tokenRule:         "─",
		},
		Variants: map[string]theme.Variant{
			VariantPlain: {
				Tokens: map[string]string{
					tokenInfoPrefix:  ">",
					tokenErrorPrefix: "!",
					tokenStepDone:    "#",
					tokenStepTodo:    "-",
					tokenRule:        "-",
				},
			},
		},
	}
}

// Catalog resolves theme selections from registered manifests. It satisfies
// theme.ThemeSelector.
type Catalog struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// NewCatalog registers the given manifests, or the built-in one when none
// are given.
func NewCatalog(manifests ...*theme.Manifest) (*Catalog, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	c := &Catalog{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("tui: register theme %q: %w", manifest.Name, err)
		}
		c.manifests[manifest.Name] = manifest
	}
	return c, nil
}

// Select picks a manifest and variant. An empty name selects the built-in
// theme and an empty variant the base tokens.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = ThemeName
	}
	manifest, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("tui: unknown theme %q", name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = VariantDefault
	}
	if variant != VariantDefault {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ThemeFromSelection merges the variant tokens over the manifest tokens.
func ThemeFromSelection(selection *theme.Selection) Theme {
	if selection == nil || selection.Manifest == nil {
		return defaultTheme()
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	fallback := defaultTheme()
	pick := func(key, def string) string {
		if value, ok := tokens[key]; ok && value != "" {
			return value
		}
		return def
	}
	return Theme{
		Name:         selection.Theme,
		Variant:      selection.Variant,
		PromptPrefix: pick(tokenPromptPrefix, fallback.PromptPrefix),
		InfoPrefix:   pick(tokenInfoPrefix, fallback.InfoPrefix),
		ErrorPrefix:  pick(tokenErrorPrefix, fallback.ErrorPrefix),
		ChipOpen:     pick(tokenChipOpen, fallback.ChipOpen),
		ChipClose:    pick(tokenChipClose, fallback.ChipClose),
		StepDone:     pick(tokenStepDone, fallback.StepDone),
		StepTodo:     pick(tokenStepTodo, fallback.StepTodo),
		Rule:         pick(tokenRule, fallback.Rule),
	}
}

// ResolveTheme selects a variant of the built-in theme.
func ResolveTheme(variant string) (Theme, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return Theme{}, err
	}
	selection, err := catalog.Select(ThemeName, variant)
	if err != nil {
		return Theme{}, err
	}
	return ThemeFromSelection(selection), nil
}

func defaultTheme() Theme {
	return Theme{
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
}
