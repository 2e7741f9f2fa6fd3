package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Document is a raw OpenAPI payload plus where it came from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw. Both arguments are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document source is nil")
	case len(raw) == 0:
		return Document{}, fmt.Errorf("openapi: %s is empty", src.Location())
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is one OpenAPI operation reduced to what the form builder reads.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
	// Responses is keyed by status code.
	Responses  map[string]Schema
	Extensions map[string]any
}

// NewOperation requires id, method and path. The method is upper-cased.
func NewOperation(id, method, path string, body Schema, responses map[string]Schema) (Operation, error) {
	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if method == "" {
		missing = append(missing, "method")
	}
	if path == "" {
		missing = append(missing, "path")
	}
	if len(missing) > 0 {
		return Operation{}, fmt.Errorf("openapi: operation missing %s", strings.Join(missing, ", "))
	}
	if responses == nil {
		responses = map[string]Schema{}
	}
	return Operation{
		ID:          id,
		Method:      strings.ToUpper(method),
		Path:        path,
		RequestBody: body,
		Responses:   responses,
	}, nil
}

// Schema is a request or response body, or one of its properties.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Extensions  map[string]any
}
