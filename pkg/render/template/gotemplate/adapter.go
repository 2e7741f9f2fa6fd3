package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-changewizard/pkg/render"
	"github.com/goliatone/go-changewizard/pkg/render/template"
)

const screenExt = ".tpl"

// Option configures an Engine.
type Option func(*Engine)

// WithFS loads screen templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		if files != nil {
			e.sources = append(e.sources, files)
		}
	}
}

// WithDir loads screen templates from a directory on disk. Templates found in
// dir shadow those from later sources.
func WithDir(dir string) Option {
	return func(e *Engine) {
		if dir = strings.TrimSpace(dir); dir != "" {
			e.sources = append(e.sources, os.DirFS(dir))
		}
	}
}

// WithGlobalData seeds values visible to every screen.
func WithGlobalData(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			e.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders terminal screens from a pongo2 template set.
type Engine struct {
	mu      sync.RWMutex
	sources []fs.FS
	globals pongo2.Context
	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one template source is required.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		globals: pongo2.Context{},
		cache:   map[string]*pongo2.Template{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if len(e.sources) == 0 {
		return nil, errors.New("gotemplate: no template source configured")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(e.sources))
	for _, src := range e.sources {
		loaders = append(loaders, pongo2.NewFSLoader(src))
	}
	e.set = pongo2.NewSet("changewizard", loaders...)
	e.set.Globals = e.globals
	registerScreenFilters()
	return e, nil
}

// Render treats name as inline template text when it contains pongo2 tags,
// and as a screen name otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders the screen stored as name.tpl.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, screenExt) {
		path += screenExt
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString renders inline template text.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter adds a filter shared by all engines. Names are global to
// pongo2 so a second registration of the same name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values visible to every screen.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global context: %w", err)
	}
	e.mu.Lock()
	e.globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(ctx)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", label, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// toContext accepts maps as they are and flattens anything else through its
// JSON form so struct tags decide the template names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("expected an object, got %T", data)
	}
	return ctx, nil
}

var registerOnce sync.Once

func registerScreenFilters() {
	registerOnce.Do(func() {
		filters := map[string]pongo2.FilterFunction{
			"trim":     filterTrim,
			"plain":    filterPlain,
			"ellipsis": filterEllipsis,
			"padlines": filterPadLines,
		}
		for name, fn := range filters {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, fn)
			}
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterPlain strips markup from server supplied text.
func filterPlain(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(render.PlainText(in.String())), nil
}

func filterEllipsis(in *pongo2.Value, limit *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	n := 0
	if limit != nil {
		n = limit.Integer()
	}
	return pongo2.AsValue(render.Truncate(in.String(), n)), nil
}

// filterPadLines prefixes each line so multi-line server text stays inside a
// panel.
func filterPadLines(in *pongo2.Value, prefix *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	pad := "  "
	if prefix != nil && !prefix.IsNil() {
		pad = prefix.String()
	}
	return pongo2.AsValue(render.Indent(in.String(), pad)), nil
}
