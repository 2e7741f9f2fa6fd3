package model

import (
	internalmodel "github.com/goliatone/go-changewizard/internal/model"
	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
)

// Builder converts an OpenAPI operation into the change form model.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures the builder.
type BuilderOption func(*internalmodel.Options)

// WithLabeler overrides how field names become labels.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	var cfg internalmodel.Options
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return internalmodel.New(cfg)
}
