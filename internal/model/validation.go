package model

import (
	"errors"
	"fmt"
	"strconv"

	pkgopenapi "github.com/goliatone/go-changewizard/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	if err := validateSchema(op.RequestBody); err != nil {
		return fmt.Errorf("model builder: invalid request body: %w", err)
	}
	return nil
}

func validateSchema(schema pkgopenapi.Schema) error {
	if schema.Type == "array" && schema.Items == nil {
		return errors.New("array schema requires items")
	}
	for _, nested := range schema.Properties {
		if err := validateSchema(nested); err != nil {
			return err
		}
	}
	if schema.Items != nil {
		return validateSchema(*schema.Items)
	}
	return nil
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
}
