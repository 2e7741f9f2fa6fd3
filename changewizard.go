// Package changewizard assembles the change-record form pipeline: it loads
// the OpenAPI document, applies the step layout, and returns the wizard
// layout the terminal front end walks.
package changewizard

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-changewizard/internal/openapi/loader"
	internalParser "github.com/goliatone/go-changewizard/internal/openapi/parser"
	"github.com/goliatone/go-changewizard/pkg/model"
	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
	"github.com/goliatone/go-changewizard/pkg/orchestrator"
	"github.com/goliatone/go-changewizard/pkg/wizard"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Sources selects the form definitions. Empty fields keep the embedded
// documents.
type Sources struct {
	// OpenAPI is a file path or http(s) URL.
	OpenAPI string
	// LayoutDir holds step layout YAML/JSON documents.
	LayoutDir string
}

// Options converts s into orchestrator options.
func (s Sources) Options(logger *zap.Logger) ([]orchestrator.Option, error) {
	opts := []orchestrator.Option{orchestrator.WithLogger(logger)}

	src, err := pkgopenapi.ParseSource(s.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("changewizard: openapi source: %w", err)
	}
	if src != nil {
		opts = append(opts, orchestrator.WithSource(src))
	}

	if dir := strings.TrimSpace(s.LayoutDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("changewizard: layout dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("changewizard: layout dir %q is not a directory", dir)
		}
		opts = append(opts, orchestrator.WithLayoutFS(os.DirFS(dir)))
	}
	return opts, nil
}

// FormModel resolves the form model described by s.
func FormModel(ctx context.Context, s Sources, logger *zap.Logger) (model.FormModel, error) {
	opts, err := s.Options(logger)
	if err != nil {
		return model.FormModel{}, err
	}
	return NewOrchestrator(opts...).Form(ctx)
}

// Layout resolves the form model described by s and converts it into wizard
// steps.
func Layout(ctx context.Context, s Sources, logger *zap.Logger) (wizard.Layout, error) {
	form, err := FormModel(ctx, s, logger)
	if err != nil {
		return wizard.Layout{}, err
	}
	layout, err := wizard.LayoutFromModel(form)
	if err != nil {
		return wizard.Layout{}, fmt.Errorf("changewizard: step layout: %w", err)
	}
	return layout, nil
}
