package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-changewizard"
	"github.com/goliatone/go-changewizard/pkg/changes"
	"github.com/goliatone/go-changewizard/pkg/model"
	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
	"github.com/goliatone/go-changewizard/pkg/rules"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the resolved form model as JSON",
	Long: `Print the form model the wizard walks: fields, widgets, validation
rules, and the step layout, after the OpenAPI document and layout overrides
are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := changewizard.FormModel(cmd.Context(), changewizard.Sources{
			OpenAPI:   cfg.Schema.OpenAPI,
			LayoutDir: cfg.Schema.Layout,
		}, logger)
		if err != nil {
			return err
		}
		return writeFormModel(cmd.OutOrStdout(), form)
	},
}

var schemaLintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check OpenAPI documents for unsupported x-changewizard extensions",
	Long: `Lint OpenAPI documents for x-changewizard keys the form pipeline does not
read. Paths may be files or http(s) URLs. With no paths, the embedded
change-record document is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		violations, err := lintPaths(cmd.Context(), args)
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			return nil
		}
		for _, v := range violations {
			fmt.Fprintln(cmd.ErrOrStderr(), v)
		}
		return fmt.Errorf("schema lint: %d violation(s)", len(violations))
	},
}

func init() {
	schemaCmd.AddCommand(schemaLintCmd)
}

func writeFormModel(w io.Writer, form model.FormModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(form); err != nil {
		return fmt.Errorf("encode form model: %w", err)
	}
	return nil
}

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.file, v.location, v.message)
}

func lintPaths(ctx context.Context, paths []string) ([]violation, error) {
	parser := changewizard.NewParser(pkgopenapi.WithReferenceResolution(false))
	loader := changewizard.NewLoader(
		pkgopenapi.WithFileSystem(changes.FS()),
		pkgopenapi.WithHTTPFallback(30*time.Second),
	)

	sources := []pkgopenapi.Source{pkgopenapi.SourceFromFS(changes.OpenAPIDocumentName)}
	if len(paths) > 0 {
		sources = sources[:0]
		for _, path := range paths {
			src, err := pkgopenapi.ParseSource(path)
			if err != nil {
				return nil, fmt.Errorf("lint %s: %w", path, err)
			}
			if src != nil {
				sources = append(sources, src)
			}
		}
	}

	docs := make([]pkgopenapi.Document, 0, len(sources))
	for _, src := range sources {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", src.Location(), err)
		}
		docs = append(docs, doc)
	}

	var violations []violation
	for _, doc := range docs {
		linted, err := lintDocument(ctx, parser, doc)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", doc.Location(), err)
		}
		violations = append(violations, linted...)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	return violations, nil
}

func lintDocument(ctx context.Context, parser pkgopenapi.Parser, doc pkgopenapi.Document) ([]violation, error) {
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	file := doc.Location()
	var result []violation
	for id, op := range operations {
		base := []string{"operation", id}
		result = append(result, lintExtensions(file, base, op.Extensions)...)
		result = append(result, lintSchema(file, appendPath(base, "requestBody"), op.RequestBody)...)

		codes := make([]string, 0, len(op.Responses))
		for code := range op.Responses {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			result = append(result, lintSchema(file, appendPath(base, "responses", code), op.Responses[code])...)
		}
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
	}

	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	if len(extensions) == 0 {
		return nil
	}

	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		value := extensions[key]
		switch {
		case key == model.ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation{
					file:     file,
					location: formatLocation(path),
					message:  fmt.Sprintf("%s must be an object, found %T", model.ExtensionNamespace, value),
				})
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				result = append(result, validateExtension(file, appendPath(path, nestedKey), nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, model.ExtensionNamespace+"-"):
			trimmed := strings.TrimPrefix(key, model.ExtensionNamespace+"-")
			result = append(result, validateExtension(file, path, trimmed, value)...)
		}
	}
	return result
}

func validateExtension(file string, path []string, key string, value any) []violation {
	location := formatLocation(path)
	switch {
	case key == "":
		return []violation{{file: file, location: location, message: "extension key is empty"}}
	case !model.IsAllowedExtensionKey(key):
		return []violation{{
			file:     file,
			location: location,
			message:  fmt.Sprintf("unsupported extension key %q (supported: %s)", key, strings.Join(model.AllowedExtensionKeys(), ", ")),
		}}
	}
	canonical, ok := model.CanonicalizeExtensionValue(value)
	if !ok {
		return []violation{{
			file:     file,
			location: location,
			message:  fmt.Sprintf("value for %q must be a non-empty string, number, boolean, map, or list (got %T)", key, value),
		}}
	}
	if key == "required-when" {
		if _, err := rules.Parse(canonical); err != nil {
			return []violation{{file: file, location: location, message: err.Error()}}
		}
	}
	return nil
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
