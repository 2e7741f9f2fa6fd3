// Package parser turns OpenAPI documents into pkgopenapi operations using
// kin-openapi.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
)

// Form bodies are preferred over JSON since the change record is posted as
// multipart/form-data.
var (
	requestMediaTypes  = []string{"multipart/form-data", "application/x-www-form-urlencoded", "application/json"}
	responseMediaTypes = []string{"application/json"}
)

// Parser implements pkgopenapi.Parser.
type Parser struct {
	resolve bool
}

var _ pkgopenapi.Parser = (*Parser)(nil)

func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{resolve: options.ResolveReferences}
}

// Operations returns every operation in doc keyed by operationId. Operations
// without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := p.load(ctx, doc.Raw())
	if err != nil {
		return nil, err
	}

	paths := spec.Paths.InMatchingOrder()
	sort.Strings(paths)

	ops := make(map[string]pkgopenapi.Operation)
	for _, path := range paths {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}
		for method, raw := range item.Operations() {
			if raw == nil {
				continue
			}
			op, err := convertOperation(method, path, raw)
			if err != nil {
				return nil, err
			}
			if _, dup := ops[op.ID]; dup {
				return nil, fmt.Errorf("openapi parser: duplicate operation id %q", op.ID)
			}
			ops[op.ID] = op
		}
	}
	if len(ops) == 0 {
		return nil, errors.New("openapi parser: no operations found")
	}
	return ops, nil
}

func (p *Parser) load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: empty document")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document has no paths")
	}
	if p.resolve {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}

func convertOperation(method, path string, raw *openapi3.Operation) (pkgopenapi.Operation, error) {
	id := raw.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	var body pkgopenapi.Schema
	if raw.RequestBody != nil {
		if raw.RequestBody.Value == nil {
			body = pkgopenapi.Schema{Ref: raw.RequestBody.Ref}
		} else {
			body = pickContent(raw.RequestBody.Value.Content, requestMediaTypes)
		}
	}

	op, err := pkgopenapi.NewOperation(id, method, path, body, responseSchemas(raw.Responses))
	if err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
	}
	op.Summary = raw.Summary
	op.Description = raw.Description
	op.Extensions = extractExtensions(raw.Extensions)
	return op, nil
}

func responseSchemas(responses *openapi3.Responses) map[string]pkgopenapi.Schema {
	if responses == nil {
		return nil
	}
	out := make(map[string]pkgopenapi.Schema)
	for code, ref := range responses.Map() {
		if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
			continue
		}
		schema := pickContent(ref.Value.Content, responseMediaTypes)
		if schema.Description == "" && ref.Value.Description != nil {
			schema.Description = *ref.Value.Description
		}
		out[code] = schema
	}
	return out
}

// pickContent converts the schema of the first preferred media type present,
// falling back to the alphabetically first one.
func pickContent(content openapi3.Content, preferred []string) pkgopenapi.Schema {
	for _, mediaType := range preferred {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	types := make([]string, 0, len(content))
	for mediaType := range content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		if mt := content[mediaType]; mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}
