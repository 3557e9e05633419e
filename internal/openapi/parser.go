package openapi

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/modo-caracas/actagen/pkg/forms"
)

// Extension keys understood by the parser. They carry presentation and
// message metadata that plain OpenAPI constraints cannot express.
const (
	extLabel       = "x-label"
	extPlaceholder = "x-placeholder"
	extMessages    = "x-messages"
	extOrder       = "x-order"
	extMinDate     = "x-min-date"
)

// FormForOperation lowers the request body schema of the named operation
// into a form definition. Field order follows the x-order extension.
func FormForOperation(doc *openapi3.T, operationID string) (forms.Form, error) {
	op, err := findOperation(doc, operationID)
	if err != nil {
		return forms.Form{}, err
	}

	schema, err := requestSchema(op)
	if err != nil {
		return forms.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	fields, err := objectFields(schema)
	if err != nil {
		return forms.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	return forms.Form{
		ID:     operationID,
		Title:  op.Summary,
		Fields: fields,
	}, nil
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc == nil || doc.Paths == nil {
		return nil, fmt.Errorf("openapi: document has no paths")
	}
	for _, pathItem := range doc.Paths.Map() {
		for _, op := range pathItem.Operations() {
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("request body is required")
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("request body has no json schema")
	}
	return media.Schema.Value, nil
}

func objectFields(schema *openapi3.Schema) ([]forms.Field, error) {
	if schema.Type == nil || !schema.Type.Is("object") {
		return nil, fmt.Errorf("request schema must be an object")
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]forms.Field, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromSchema(name, ref.Value, required[name])
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		oi, oj := fieldOrder(fields[i]), fieldOrder(fields[j])
		if oi != oj {
			return oi < oj
		}
		return fields[i].Name < fields[j].Name
	})
	return fields, nil
}

func fieldOrder(field forms.Field) int {
	if field.Order <= 0 {
		return 1 << 30
	}
	return field.Order
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) (forms.Field, error) {
	field := forms.Field{
		Name:        name,
		Required:    required,
		Order:       intExtension(schema, extOrder),
		Label:       stringExtension(schema, extLabel),
		Placeholder: stringExtension(schema, extPlaceholder),
		Messages:    messagesExtension(schema),
	}

	messages := field.Messages

	switch {
	case schema.Type.Is("string") && schema.Format == "date":
		field.Type = forms.FieldTypeDate
		if minDate := stringExtension(schema, extMinDate); minDate != "" {
			field.Validations = append(field.Validations, forms.ValidationRule{
				Kind:    forms.RuleMinDate,
				Params:  map[string]string{"value": minDate},
				Message: messages[forms.RuleMinDate],
			})
		}
	case schema.Type.Is("string"):
		field.Type = forms.FieldTypeString
		if schema.MinLength > 0 {
			field.Validations = append(field.Validations, forms.ValidationRule{
				Kind:    forms.RuleMinLength,
				Params:  map[string]string{"value": strconv.FormatUint(schema.MinLength, 10)},
				Message: messages[forms.RuleMinLength],
			})
		}
	case schema.Type.Is("integer"):
		field.Type = forms.FieldTypeInteger
		if schema.Min != nil {
			field.Validations = append(field.Validations, forms.ValidationRule{
				Kind:    forms.RuleMin,
				Params:  map[string]string{"value": strconv.Itoa(int(*schema.Min))},
				Message: messages[forms.RuleMin],
			})
		}
	case schema.Type.Is("array"):
		field.Type = forms.FieldTypeArray
		if schema.MinItems > 0 {
			field.Validations = append(field.Validations, forms.ValidationRule{
				Kind:    forms.RuleMinItems,
				Params:  map[string]string{"value": strconv.FormatUint(schema.MinItems, 10)},
				Message: messages[forms.RuleMinItems],
			})
		}
		if schema.Items == nil || schema.Items.Value == nil {
			return forms.Field{}, fmt.Errorf("array field %q requires items", name)
		}
		nested, err := objectFields(schema.Items.Value)
		if err != nil {
			return forms.Field{}, fmt.Errorf("array field %q: %w", name, err)
		}
		field.Items = &forms.Field{
			Name:   name,
			Type:   forms.FieldTypeObject,
			Nested: nested,
		}
	default:
		return forms.Field{}, fmt.Errorf("field %q has unsupported schema type", name)
	}

	return field, nil
}

func stringExtension(schema *openapi3.Schema, key string) string {
	raw, ok := schema.Extensions[key]
	if !ok {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

func intExtension(schema *openapi3.Schema, key string) int {
	switch v := schema.Extensions[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func messagesExtension(schema *openapi3.Schema) map[string]string {
	raw, ok := schema.Extensions[extMessages]
	if !ok {
		return nil
	}
	values, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
