package model

import (
	"fmt"
	"sort"
	"strings"

	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
)

// Options tunes a Builder. Zero values select the defaults.
type Options struct {
	// Labeler turns a property name into the prompt label.
	Labeler func(string) string
}

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

func New(options Options) *Builder {
	if options.Labeler == nil {
		options.Labeler = DefaultLabeler
	}
	return &Builder{opts: options}
}

// Build transforms an OpenAPI operation into a FormModel. Only the top-level
// properties of the request body become fields; the change form is flat.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    make(map[string]string),
	}
	mergeMetadata(form.Metadata, ParseExtensions(op.Extensions))
	mergeMetadata(form.Metadata, ParseExtensions(op.RequestBody.Extensions))

	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return FormModel{}, fmt.Errorf("model builder: request body for %q must be an object, got %q", op.ID, body.Type)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, isRequired := required[name]
		field, err := b.field(name, body.Properties[name], isRequired)
		if err != nil {
			return FormModel{}, err
		}
		form.Fields = append(form.Fields, field)
	}

	if len(form.Metadata) == 0 {
		form.Metadata = nil
	}
	return form, nil
}

func (b *Builder) field(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	applyValidations(&field, schema)

	if field.Type == FieldTypeArray {
		if schema.Items == nil {
			return Field{}, fmt.Errorf("model builder: array field %q missing items", name)
		}
		item, err := b.field(name+"Item", *schema.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &item
	}

	field.Metadata = ParseExtensions(schema.Extensions)
	field.UIHints = filterUIHints(field.Metadata)
	if field.UIHints["placeholder"] != "" {
		field.Placeholder = field.UIHints["placeholder"]
	}
	if _, ok := field.UIHints["widget"]; !ok {
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		field.UIHints["widget"] = defaultWidget(field)
	}
	return field, nil
}

// defaultWidget picks a widget from the schema shape. Layout documents may
// override it.
func defaultWidget(field Field) string {
	switch {
	case field.Type == FieldTypeArray:
		return WidgetTags
	case field.Type == FieldTypeBoolean:
		return WidgetCheckbox
	case len(field.Enum) > 0:
		return WidgetSelect
	case field.Format == "date-time":
		return WidgetDateTime
	default:
		return WidgetText
	}
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

func mergeMetadata(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
