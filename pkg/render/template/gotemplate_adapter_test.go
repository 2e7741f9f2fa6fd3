package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-changewizard/pkg/render/template/gotemplate"
	"github.com/goliatone/go-changewizard/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

var registerShout sync.Once

func TestEngineScreens(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	registerShout.Do(func() {
		err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
			return strings.ToUpper(fmt.Sprint(input)) + "!", nil
		})
		if err != nil {
			t.Fatalf("register filter: %v", err)
		}
	})

	cases := []struct {
		screen string
		data   map[string]any
	}{
		{screen: "hello", data: map[string]any{"name": "Ada"}},
		{screen: "use-global"},
		{screen: "use-filter", data: map[string]any{"name": "Ada"}},
		{screen: "sanitize", data: map[string]any{
			"detail": "Possible secret in <code>what_changed</code>",
			"link":   "https://tickets.example/CHG-1",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.screen, func(t *testing.T) {
			result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
				return engine.RenderTemplate(tc.screen, tc.data, w)
			})

			want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", tc.screen+".golden"))
			if diff := testsupport.CompareGolden(want, result); diff != "" {
				t.Fatalf("%s mismatch (-want +got):\n%s", tc.screen, diff)
			}
			if written != result {
				t.Fatalf("writer got %q, returned %q", written, result)
			}
		})
	}
}

func TestEngineDuplicateFilter(t *testing.T) {
	engine := newEngine(t)
	if err := engine.RegisterFilter("plain", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected error re-registering a built-in filter")
	}
	if err := engine.RegisterFilter(" ", nil); err == nil {
		t.Fatalf("expected error for blank filter")
	}
}

func TestEngineInlineStruct(t *testing.T) {
	engine := newEngine(t)

	type step struct {
		Icon  string `json:"icon"`
		Title string `json:"title"`
	}
	got, err := engine.Render("{{ icon }}. {{ title }}", step{Icon: "2", Title: "Impact"})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if got != "2. Impact" {
		t.Fatalf("unexpected render: %q", got)
	}

	if _, err := engine.Render("{{ x }}", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func TestEngineDirShadowsFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hi {{ name }}, {{ team }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithDir(dir),
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{"team": "ops"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada, ops" {
		t.Fatalf("unexpected render: %q", got)
	}
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for unknown screen")
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
