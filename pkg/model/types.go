package model

import internalmodel "github.com/goliatone/go-changewizard/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

const (
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
)

const (
	WidgetText     = internalmodel.WidgetText
	WidgetDateTime = internalmodel.WidgetDateTime
	WidgetSelect   = internalmodel.WidgetSelect
	WidgetRadio    = internalmodel.WidgetRadio
	WidgetTextArea = internalmodel.WidgetTextArea
	WidgetTags     = internalmodel.WidgetTags
	WidgetCheckbox = internalmodel.WidgetCheckbox
)

type (
	Field          = internalmodel.Field
	FormModel      = internalmodel.FormModel
	Section        = internalmodel.Section
	ValidationRule = internalmodel.ValidationRule
)
