package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-changewizard/internal/openapi/loader"
	internalParser "github.com/goliatone/go-changewizard/internal/openapi/parser"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
	"github.com/goliatone/go-changewizard/pkg/uischema"
)

// Option customises an Orchestrator.
type Option func(*Orchestrator)

func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) { o.loader = loader }
}

func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) { o.parser = parser }
}

func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) { o.builder = builder }
}

// WithSource reads the OpenAPI document from src instead of the embedded
// copy. Nil keeps the embedded document.
func WithSource(src pkgopenapi.Source) Option {
	return func(o *Orchestrator) {
		if src != nil {
			o.source = src
		}
	}
}

// WithOperationID picks the operation the wizard collects.
func WithOperationID(id string) Option {
	return func(o *Orchestrator) {
		if id != "" {
			o.operationID = id
		}
	}
}

// WithUIDecorators adds decorators that run after the step layout.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) { o.decorators = append(o.decorators, decorators...) }
}

// WithLayoutFS reads step layout documents from fsys. Nil disables the
// embedded layout, which leaves the form without steps.
func WithLayoutFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.layout = fsys
		o.layoutSet = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator resolves the change form model. With no options it reads the
// embedded OpenAPI document and the embedded four-step layout.
type Orchestrator struct {
	loader      pkgopenapi.Loader
	parser      pkgopenapi.Parser
	builder     model.Builder
	source      pkgopenapi.Source
	operationID string
	decorators  []model.Decorator
	layout      fs.FS
	layoutSet   bool
	logger      *zap.Logger
}

func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		operationID: changes.CreateOperationID,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}

	if o.source == nil {
		o.source = pkgopenapi.SourceFromFS(changes.OpenAPIDocumentName)
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(
			pkgopenapi.WithFileSystem(changes.FS()),
			pkgopenapi.WithHTTPFallback(0),
		))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if !o.layoutSet {
		o.layout = uischema.EmbeddedFS()
	}
	return o
}

// Form loads, parses, builds, and decorates the form model. Its Sections are
// the wizard steps; a model without any is an error.
func (o *Orchestrator) Form(ctx context.Context) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}

	decorators, err := o.pipeline()
	if err != nil {
		return model.FormModel{}, err
	}

	op, location, err := o.operation(ctx)
	if err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := decorators.Decorate(&form); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	if len(form.Sections) == 0 {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q has no step layout", o.operationID)
	}

	o.logger.Debug("form model resolved",
		zap.String("source", location),
		zap.String("operation", form.OperationID),
		zap.Int("fields", len(form.Fields)),
		zap.Int("steps", len(form.Sections)),
	)
	return form, nil
}

func (o *Orchestrator) operation(ctx context.Context) (pkgopenapi.Operation, string, error) {
	doc, err := o.loader.Load(ctx, o.source)
	if err != nil {
		return pkgopenapi.Operation{}, "", fmt.Errorf("orchestrator: load document: %w", err)
	}
	ops, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return pkgopenapi.Operation{}, "", fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	op, ok := ops[o.operationID]
	if !ok {
		return pkgopenapi.Operation{}, "", fmt.Errorf("orchestrator: operation %q not found", o.operationID)
	}
	return op, doc.Location(), nil
}

// pipeline puts the step layout ahead of caller decorators so they see the
// steps.
func (o *Orchestrator) pipeline() (model.Chain, error) {
	var out model.Chain
	if o.layout != nil {
		store, err := uischema.LoadFS(o.layout)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load step layout: %w", err)
		}
		if !store.Empty() {
			out = append(out, uischema.NewDecorator(store))
		}
	}
	return append(out, o.decorators...), nil
}
